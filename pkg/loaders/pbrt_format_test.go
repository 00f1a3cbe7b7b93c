package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantplane/photon/pkg/core"
)

func TestFormatPBRTSceneRoundTripsStatementShape(t *testing.T) {
	src := `LookAt 0 0 -5  0 0 0  0 1 0
Camera "perspective" "float fov" 40
WorldBegin
Material "matte" "rgb Kd" [0.5 0.5 0.5]
Shape "sphere" "float radius" 1
LightSource "point" "point3 from" [0 5 -5] "rgb I" [20 20 20]
WorldEnd
`
	parsed, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)

	out := FormatPBRTScene(parsed)
	assert.Contains(t, out, `LookAt 0 0 -5`)
	assert.Contains(t, out, `Camera "perspective"`)
	assert.Contains(t, out, `Material "matte"`)
	assert.Contains(t, out, `Shape "sphere"`)
	assert.Contains(t, out, `LightSource "point"`)
	assert.Contains(t, out, "WorldBegin")
	assert.Contains(t, out, "WorldEnd")
}

func TestDumpTriangleMeshesAsPLYWritesLoadablePLY(t *testing.T) {
	src := `WorldBegin
Shape "trianglemesh" "point3 P" [0 0 0  1 0 0  0 1 0] "integer indices" [0 1 2]
WorldEnd
`
	parsed, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)

	dir := t.TempDir()
	n, err := DumpTriangleMeshesAsPLY(parsed, dir, "mesh")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	mesh, err := LoadPLY(filepath.Join(dir, entries[0].Name()), core.IdentityTransform())
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 3)
	assert.Equal(t, []int{0, 1, 2}, mesh.Indices)
}

func TestDumpTriangleMeshesAsPLYSkipsNonMeshShapes(t *testing.T) {
	src := `WorldBegin
Shape "sphere" "float radius" 1
WorldEnd
`
	parsed, err := ParsePBRT(strings.NewReader(src))
	require.NoError(t, err)

	n, err := DumpTriangleMeshesAsPLY(parsed, t.TempDir(), "mesh")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
