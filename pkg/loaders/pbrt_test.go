package loaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantplane/photon/pkg/core"
)

func TestTokenizePBRTHandlesQuotesAndBrackets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple statement", `Camera "perspective"`, []string{`Camera`, `"perspective"`}},
		{"with parameter", `Camera "perspective" "float fov" 45`, []string{`Camera`, `"perspective"`, `"float fov"`, `45`}},
		{"with array", `Material "matte" "rgb Kd" [0.7 0.3 0.1]`, []string{`Material`, `"matte"`, `"rgb Kd"`, `[0.7 0.3 0.1]`}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tokenizePBRT(tc.input))
		})
	}
}

func TestParseStatementExtractsSubtypeAndParams(t *testing.T) {
	stmt, err := parseStatement(`Shape "sphere" "float radius" 2.0`)
	require.NoError(t, err)
	assert.Equal(t, "Shape", stmt.Type)
	assert.Equal(t, "sphere", stmt.Subtype)
	assert.Equal(t, 2.0, stmt.GetFloatParam("radius", 0))
}

func TestParseStatementMultilineContinuation(t *testing.T) {
	scene, err := ParsePBRT(strings.NewReader(`WorldBegin
Material "matte"
  "rgb Kd" [0.2 0.3 0.4]
Shape "sphere" "float radius" 1
WorldEnd
`))
	require.NoError(t, err)
	require.Len(t, scene.Materials, 1)
	assert.Equal(t, core.NewSpectrum(0.2, 0.3, 0.4), scene.Materials[0].GetRGBParam("Kd", core.SpectrumBlack))
	require.Len(t, scene.Shapes, 1)
}

func TestRouteStatementAssignsMaterialIndexToShapes(t *testing.T) {
	src := `WorldBegin
Material "matte" "rgb Kd" [1 0 0]
Shape "sphere" "float radius" 1
Material "mirror"
Shape "sphere" "float radius" 1
WorldEnd
`
	scene, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, scene.Shapes, 2)
	assert.Equal(t, 0, scene.Shapes[0].MaterialIndex)
	assert.Equal(t, 1, scene.Shapes[1].MaterialIndex)
}

func TestAttributeBeginEndScopesLocalMaterial(t *testing.T) {
	src := `WorldBegin
AttributeBegin
Material "mirror"
Shape "sphere" "float radius" 1
AttributeEnd
Shape "sphere" "float radius" 1
WorldEnd
`
	scene, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, scene.Attributes, 1)
	require.Len(t, scene.Attributes[0].Shapes, 1)
	assert.Equal(t, 0, scene.Attributes[0].Shapes[0].MaterialIndex)
	// Outside the block, material index reverts to -1 (none set globally).
	require.Len(t, scene.Shapes, 1)
	assert.Equal(t, -1, scene.Shapes[0].MaterialIndex)
}

func TestAreaLightSourceFoldsIntoFollowingShape(t *testing.T) {
	src := `WorldBegin
AttributeBegin
AreaLightSource "diffuse" "rgb L" [10 10 10]
Shape "sphere" "float radius" 1
AttributeEnd
WorldEnd
`
	scene, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, scene.Attributes[0].Shapes, 1)
	assert.True(t, scene.Attributes[0].Shapes[0].IsAreaLight())
	assert.Equal(t, core.NewSpectrum(10, 10, 10), scene.Attributes[0].Shapes[0].GetRGBParam("L", core.SpectrumBlack))
}

func TestParseLookAt(t *testing.T) {
	scene, err := ParsePBRT(strings.NewReader("LookAt 0 0 -5  0 0 0  0 1 0\n"))
	require.NoError(t, err)
	require.NotNil(t, scene.LookAtEye)
	assert.Equal(t, core.NewPoint3(0, 0, -5), *scene.LookAtEye)
	assert.Equal(t, core.NewPoint3(0, 0, 0), *scene.LookAtAt)
	assert.Equal(t, core.NewVector3(0, 1, 0), *scene.LookAtUp)
}

func TestBuildProducesRenderableSceneAndCamera(t *testing.T) {
	src := `LookAt 0 0 -5  0 0 0  0 1 0
Camera "perspective" "float fov" 40
Film "image" "integer xresolution" [320] "integer yresolution" [240]
WorldBegin
Material "matte" "rgb Kd" [0.5 0.5 0.5]
Shape "sphere" "float radius" 1
LightSource "point" "point3 from" [0 5 -5] "rgb I" [20 20 20]
WorldEnd
`
	parsed, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)

	result, err := Build(parsed, ".")
	require.NoError(t, err)
	assert.Equal(t, 320, result.Width)
	assert.Equal(t, 240, result.Height)
	assert.NotNil(t, result.Camera)
	assert.Len(t, result.Scene.Lights(), 1)

	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))
	_, hit := result.Scene.Intersect(ray)
	assert.True(t, hit)
}

func TestBuildRejectsUnsupportedMaterial(t *testing.T) {
	src := `WorldBegin
Material "metal2"
Shape "sphere" "float radius" 1
WorldEnd
`
	parsed, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)
	_, err = Build(parsed, ".")
	assert.Error(t, err)
}
