package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/core"
)

func TestDiskIntersectMiss(t *testing.T) {
	disk := NewDisk(core.IdentityTransform(), 0, 1, 0)
	ray := core.NewRay(core.NewPoint3(2, 0, -5), core.NewVector3(0, 0, 1))

	_, _, ok := disk.Intersect(ray)
	assert.False(t, ok)
}

func TestDiskIntersectFrontFace(t *testing.T) {
	disk := NewDisk(core.IdentityTransform(), 2, 1, 0)
	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))

	si, tHit, ok := disk.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 7.0, tHit, 1e-9)
	assert.InDelta(t, 2.0, si.P.Z, 1e-9)
	assert.InDelta(t, 1.0, si.N.Z, 1e-9)
}

func TestDiskIntersectSkipsInnerRadius(t *testing.T) {
	disk := NewDisk(core.IdentityTransform(), 0, 2, 1)
	ray := core.NewRay(core.NewPoint3(0.5, 0, -5), core.NewVector3(0, 0, 1))

	_, _, ok := disk.Intersect(ray)
	assert.False(t, ok)
}

func TestDiskIntersectPMatchesIntersect(t *testing.T) {
	disk := NewDisk(core.Translate(core.NewVector3(0, 0, 3)), 0, 1, 0)
	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))

	_, _, ok := disk.Intersect(ray)
	assert.True(t, ok)
	assert.True(t, disk.IntersectP(ray))
}

func TestDiskAreaMatchesAnnulusFormula(t *testing.T) {
	disk := NewDisk(core.IdentityTransform(), 0, 2, 1)
	assert.InDelta(t, math.Pi*(4-1), disk.Area(), 1e-9)
}

func TestDiskSampleAreaStaysWithinRadius(t *testing.T) {
	disk := NewDisk(core.IdentityTransform(), 0, 2, 0)
	p, n := disk.SampleArea(core.NewVec2(0.3, 0.7))

	dist2 := p.X*p.X + p.Y*p.Y
	assert.LessOrEqual(t, dist2, 4.0+1e-9)
	assert.InDelta(t, 1.0, n.Z, 1e-9)
}
