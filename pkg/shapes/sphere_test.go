package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/core"
)

func TestSphereIntersectMiss(t *testing.T) {
	sphere := NewSphere(core.IdentityTransform(), 1.0)
	ray := core.NewRay(core.NewPoint3(2, 0, 0), core.NewVector3(0, 1, 0))

	_, _, ok := sphere.Intersect(ray)
	assert.False(t, ok)
}

func TestSphereIntersectFrontFace(t *testing.T) {
	sphere := NewSphere(core.IdentityTransform(), 1.0)
	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))

	si, tHit, ok := sphere.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, tHit, 1e-9)
	assert.InDelta(t, -1.0, si.P.Z, 1e-9)
	assert.InDelta(t, 1.0, si.N.Length(), 1e-9)
}

func TestSphereIntersectPMatchesIntersect(t *testing.T) {
	sphere := NewSphere(core.Translate(core.NewVector3(1, 2, 3)), 2.0)
	ray := core.NewRay(core.NewPoint3(1, 2, -10), core.NewVector3(0, 0, 1))

	_, _, ok := sphere.Intersect(ray)
	assert.True(t, ok)
	assert.True(t, sphere.IntersectP(ray))
}

func TestSphereWorldBoundsTranslated(t *testing.T) {
	sphere := NewSphere(core.Translate(core.NewVector3(5, 0, 0)), 1.0)
	b := sphere.WorldBounds()

	assert.InDelta(t, 4.0, b.Min.X, 1e-9)
	assert.InDelta(t, 6.0, b.Max.X, 1e-9)
}

func TestSphereAreaMatchesFormula(t *testing.T) {
	sphere := NewSphere(core.IdentityTransform(), 3.0)
	assert.InDelta(t, 4*math.Pi*9, sphere.Area(), 1e-9)
}
