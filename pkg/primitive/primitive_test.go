package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/accel"
	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/shapes"
)

func TestGeometricPrimitiveStampsMaterialIndex(t *testing.T) {
	sphere := shapes.NewSphere(core.IdentityTransform(), 1.0)
	gp := NewGeometricPrimitive(sphere, 3, -1)

	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))
	si, _, ok := gp.Intersect(ray)
	assert.True(t, ok)
	assert.Equal(t, 3, si.MaterialIndex)
	assert.Equal(t, -1, si.AreaLightIndex)
}

func TestPrimitiveListFindsClosest(t *testing.T) {
	near := NewGeometricPrimitive(shapes.NewSphere(core.Translate(core.NewVector3(0, 0, -3)), 1.0), 0, -1)
	far := NewGeometricPrimitive(shapes.NewSphere(core.Translate(core.NewVector3(0, 0, -10)), 1.0), 1, -1)
	list := NewPrimitiveList([]Primitive{far, near})

	ray := core.NewRay(core.NewPoint3(0, 0, -100), core.NewVector3(0, 0, 1))
	si, _, ok := list.Intersect(ray)
	assert.True(t, ok)
	assert.Equal(t, 0, si.MaterialIndex)
}

func TestBVHAggregateMatchesPrimitiveList(t *testing.T) {
	var prims []Primitive
	for i := 0; i < 50; i++ {
		s := shapes.NewSphere(core.Translate(core.NewVector3(float64(i)*3, 0, 0)), 1.0)
		prims = append(prims, NewGeometricPrimitive(s, i, -1))
	}
	list := NewPrimitiveList(prims)
	bvh := NewBVHAggregate(prims, accel.SplitSurfaceArea)

	ray := core.NewRay(core.NewPoint3(30, 0, -10), core.NewVector3(0, 0, 1))
	wantSi, wantT, wantOK := list.Intersect(ray)
	gotSi, gotT, gotOK := bvh.Intersect(ray)

	assert.Equal(t, wantOK, gotOK)
	assert.InDelta(t, wantT, gotT, 1e-9)
	assert.Equal(t, wantSi.MaterialIndex, gotSi.MaterialIndex)
}
