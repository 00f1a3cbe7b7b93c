package integrator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/lights"
	"github.com/quantplane/photon/pkg/materials"
	"github.com/quantplane/photon/pkg/sampler"
	"github.com/quantplane/photon/pkg/shapes"
)

// testScene is a minimal hand-wired Scene: one matte sphere at the
// origin, one point light, no background.
type testScene struct {
	sphere *shapes.Sphere
	mat    materials.Material
	light  lights.Light
}

func newTestScene() *testScene {
	return &testScene{
		sphere: shapes.NewSphere(core.IdentityTransform(), 1),
		mat:    materials.NewMatte(materials.NewConstantTexture(core.NewSpectrumGray(0.8)), materials.NewConstantScalarTexture(0)),
		light:  lights.NewPointLight(core.NewPoint3(5, 5, 5), core.NewSpectrumGray(50)),
	}
}

func (s *testScene) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	si, _, ok := s.sphere.Intersect(ray)
	if !ok {
		return core.SurfaceInteraction{}, false
	}
	si.MaterialIndex = 0
	si.AreaLightIndex = -1
	return si, true
}

func (s *testScene) AnyIntersect(ray core.Ray) bool {
	return s.sphere.IntersectP(ray)
}

func (s *testScene) Lights() []lights.Light { return []lights.Light{s.light} }

func (s *testScene) Material(index int) materials.Material {
	if index != 0 {
		return nil
	}
	return s.mat
}

func (s *testScene) AreaLight(int) lights.Light { return nil }

func TestLightAlongRayMissReturnsBlack(t *testing.T) {
	scn := newTestScene()
	integ := NewWhittedIntegrator(5)
	samp := sampler.NewRandomSampler(1, rand.New(rand.NewSource(1)))
	ar := arena.New(4)

	ray := core.NewRay(core.NewPoint3(10, 10, 10), core.NewVector3(0, 0, 1))
	L := integ.LightAlongRay(ray, scn, samp, ar, 0)
	assert.True(t, L.IsBlack())
}

func TestLightAlongRayHitIsLitByVisiblePointLight(t *testing.T) {
	scn := newTestScene()
	integ := NewWhittedIntegrator(5)
	samp := sampler.NewRandomSampler(1, rand.New(rand.NewSource(1)))
	ar := arena.New(4)

	ray := core.NewRay(core.NewPoint3(0, 0, 5), core.NewVector3(0, 0, -1))
	L := integ.LightAlongRay(ray, scn, samp, ar, 0)
	assert.Greater(t, L.Luminance(), 0.0)
}

func TestLightAlongRayOccludedLightContributesNothing(t *testing.T) {
	scn := newTestScene()
	scn.light = lights.NewPointLight(core.NewPoint3(0, 0, 0), core.NewSpectrumGray(50))
	integ := NewWhittedIntegrator(5)
	samp := sampler.NewRandomSampler(1, rand.New(rand.NewSource(1)))
	ar := arena.New(4)

	ray := core.NewRay(core.NewPoint3(0, 0, 5), core.NewVector3(0, 0, -1))
	L := integ.LightAlongRay(ray, scn, samp, ar, 0)
	assert.True(t, L.IsBlack())
}

func TestWhittedMirrorIsBlackAtMaxDepthOne(t *testing.T) {
	scn := newTestScene()
	scn.mat = materials.NewMirror(materials.NewConstantTexture(core.SpectrumWhite))
	integ := NewWhittedIntegrator(1) // depth+1 < 1 never true: no recursion allowed
	samp := sampler.NewRandomSampler(1, rand.New(rand.NewSource(1)))
	ar := arena.New(4)

	ray := core.NewRay(core.NewPoint3(0, 0, 5), core.NewVector3(0, 0, -1))
	L := integ.LightAlongRay(ray, scn, samp, ar, 0)
	assert.True(t, L.IsBlack())
}
