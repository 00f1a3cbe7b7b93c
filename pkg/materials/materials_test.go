package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/bsdf"
	"github.com/quantplane/photon/pkg/core"
)

func flatSurfaceInteraction() core.SurfaceInteraction {
	return core.NewSurfaceInteraction(
		core.NewPoint3(0, 0, 0), core.Vector3{}, core.NewVec2(0.5, 0.5),
		core.NewVector3(0, 0, 1),
		core.NewVector3(1, 0, 0), core.NewVector3(0, 1, 0),
		core.Normal3{}, core.Normal3{}, 0,
	)
}

func TestMatteSmoothAddsLambertian(t *testing.T) {
	m := NewMatte(NewConstantTexture(core.NewSpectrumGray(0.5)), NewConstantScalarTexture(0))
	ar := arena.New(4)
	b := m.ComputeScatteringFunctions(flatSurfaceInteraction(), ar, Radiance, true)
	assert.Equal(t, 1, b.NumComponents(bsdf.All))
}

func TestMatteRoughAddsOrenNayar(t *testing.T) {
	m := NewMatte(NewConstantTexture(core.NewSpectrumGray(0.5)), NewConstantScalarTexture(20))
	ar := arena.New(4)
	b := m.ComputeScatteringFunctions(flatSurfaceInteraction(), ar, Radiance, true)
	assert.Equal(t, 1, b.NumComponents(bsdf.Diffuse))
}

func TestMirrorAddsSpecularReflection(t *testing.T) {
	m := NewMirror(NewConstantTexture(core.SpectrumWhite))
	ar := arena.New(4)
	b := m.ComputeScatteringFunctions(flatSurfaceInteraction(), ar, Radiance, true)
	assert.Equal(t, 1, b.NumComponents(bsdf.Specular))
}

func TestGlassSmoothMultiLobeAllowedCollapsesToFresnelSpecular(t *testing.T) {
	g := NewGlass(
		NewConstantTexture(core.SpectrumWhite), NewConstantTexture(core.SpectrumWhite),
		NewConstantScalarTexture(0), NewConstantScalarTexture(0), 1.5, true,
	)
	ar := arena.New(4)
	b := g.ComputeScatteringFunctions(flatSurfaceInteraction(), ar, Radiance, true)
	assert.Equal(t, 1, b.NumComponents(bsdf.All))
}

func TestGlassSmoothSingleLobeSplitsReflectionAndTransmission(t *testing.T) {
	g := NewGlass(
		NewConstantTexture(core.SpectrumWhite), NewConstantTexture(core.SpectrumWhite),
		NewConstantScalarTexture(0), NewConstantScalarTexture(0), 1.5, true,
	)
	ar := arena.New(4)
	b := g.ComputeScatteringFunctions(flatSurfaceInteraction(), ar, Radiance, false)
	assert.Equal(t, 2, b.NumComponents(bsdf.All))
}

func TestPlasticAddsDiffuseAndGlossy(t *testing.T) {
	p := NewPlastic(
		NewConstantTexture(core.NewSpectrumGray(0.5)), NewConstantTexture(core.NewSpectrumGray(0.3)),
		NewConstantScalarTexture(0.1), true,
	)
	ar := arena.New(4)
	b := p.ComputeScatteringFunctions(flatSurfaceInteraction(), ar, Radiance, true)
	assert.Equal(t, 1, b.NumComponents(bsdf.Diffuse))
	assert.Equal(t, 1, b.NumComponents(bsdf.Glossy))
}
