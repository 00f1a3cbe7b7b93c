package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/accel"
	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/lights"
	"github.com/quantplane/photon/pkg/materials"
	"github.com/quantplane/photon/pkg/primitive"
	"github.com/quantplane/photon/pkg/shapes"
)

func TestNewBuildsBoundsFromPrimitives(t *testing.T) {
	sphere := shapes.NewSphere(core.Translate(core.NewVector3(5, 0, 0)), 1)
	prim := primitive.NewGeometricPrimitive(sphere, 0, -1)
	mat := materials.NewMatte(materials.NewConstantTexture(core.NewSpectrumGray(0.5)), materials.NewConstantScalarTexture(0))

	s := New([]primitive.Primitive{prim}, []materials.Material{mat}, nil, nil, accel.SplitSurfaceArea)

	b := s.WorldBounds()
	assert.True(t, b.Max.X >= 6 && b.Min.X <= 4)
}

func TestIntersectStampsMaterialIndex(t *testing.T) {
	sphere := shapes.NewSphere(core.IdentityTransform(), 1)
	prim := primitive.NewGeometricPrimitive(sphere, 2, -1)
	mats := []materials.Material{nil, nil, materials.NewMatte(materials.NewConstantTexture(core.SpectrumWhite), materials.NewConstantScalarTexture(0))}

	s := New([]primitive.Primitive{prim}, mats, nil, nil, accel.SplitSurfaceArea)

	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))
	si, hit := s.Intersect(ray)
	assert.True(t, hit)
	assert.Equal(t, 2, si.MaterialIndex)
	assert.NotNil(t, s.Material(si.MaterialIndex))
}

func TestAnyIntersectDoesNotRequireClosestHit(t *testing.T) {
	sphere := shapes.NewSphere(core.IdentityTransform(), 1)
	prim := primitive.NewGeometricPrimitive(sphere, 0, -1)
	s := New([]primitive.Primitive{prim}, nil, nil, nil, accel.SplitSurfaceArea)

	hitRay := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))
	missRay := core.NewRay(core.NewPoint3(10, 10, -5), core.NewVector3(0, 0, 1))
	assert.True(t, s.AnyIntersect(hitRay))
	assert.False(t, s.AnyIntersect(missRay))
}

func TestAreaLightLookupByIndex(t *testing.T) {
	disk := shapes.NewDisk(core.IdentityTransform(), 0, 1, 0)
	light := lights.NewDiffuseArea(disk, core.NewSpectrumGray(10))
	prim := primitive.NewGeometricPrimitive(disk, 0, 0)

	s := New([]primitive.Primitive{prim}, nil, []lights.Light{light}, []lights.Light{light}, accel.SplitSurfaceArea)

	assert.Equal(t, light, s.AreaLight(0))
	assert.Nil(t, s.AreaLight(-1))
	assert.Nil(t, s.AreaLight(5))
}

func TestMaterialLookupOutOfRangeReturnsNil(t *testing.T) {
	s := New(nil, nil, nil, nil, accel.SplitSurfaceArea)
	assert.Nil(t, s.Material(0))
	assert.Nil(t, s.Material(-1))
}
