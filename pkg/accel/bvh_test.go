package accel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/core"
)

// testSphere is a minimal accel.Primitive used only to exercise BVH
// traversal without depending on pkg/shapes.
type testSphere struct {
	center core.Point3
	radius float64
}

func (s testSphere) WorldBounds() core.Bounds3 {
	r := core.NewVector3(s.radius, s.radius, s.radius)
	return core.NewBounds3(s.center.SubtractVec(r), s.center.Add(r))
}

func (s testSphere) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return core.SurfaceInteraction{}, 0, false
	}
	t := (-halfB - math.Sqrt(disc)) / a
	if t <= 0 || t >= ray.TMax {
		return core.SurfaceInteraction{}, 0, false
	}
	si := core.SurfaceInteraction{Interaction: core.Interaction{P: ray.At(t), Valid: true}}
	return si, t, true
}

func (s testSphere) IntersectP(ray core.Ray) bool {
	_, _, ok := s.Intersect(ray)
	return ok
}

func randomSpheres(n int, seed int64) []Primitive {
	r := rand.New(rand.NewSource(seed))
	prims := make([]Primitive, n)
	for i := 0; i < n; i++ {
		c := core.NewPoint3(r.Float64()*20-10, r.Float64()*20-10, r.Float64()*20-10)
		prims[i] = testSphere{center: c, radius: 0.3 + r.Float64()*0.5}
	}
	return prims
}

func bruteForceIntersect(prims []Primitive, ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	hitAnything := false
	var closest core.SurfaceInteraction
	var closestT float64
	r := ray
	for _, p := range prims {
		if si, t, ok := p.Intersect(r); ok {
			hitAnything = true
			closest = si
			closestT = t
			r.TMax = t
		}
	}
	return closest, closestT, hitAnything
}

func TestBVHMatchesBruteForce(t *testing.T) {
	prims := randomSpheres(200, 42)

	for _, method := range []SplitMethod{SplitSurfaceArea, SplitMiddle, SplitEqualCounts} {
		bvh := Build(prims, method)
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			origin := core.NewPoint3(r.Float64()*40-20, r.Float64()*40-20, -30)
			dir := core.NewVector3(0, 0, 1)
			ray := core.NewRay(origin, dir)

			_, wantT, wantHit := bruteForceIntersect(prims, ray)
			_, gotT, gotHit := bvh.Intersect(ray)

			assert.Equal(t, wantHit, gotHit)
			if wantHit {
				assert.InDelta(t, wantT, gotT, 1e-6)
			}
		}
	}
}

func TestBVHEmptyPrimitiveSet(t *testing.T) {
	bvh := Build(nil, SplitSurfaceArea)
	_, _, ok := bvh.Intersect(core.NewRay(core.Point3{}, core.NewVector3(0, 0, 1)))
	assert.False(t, ok)
}

func TestBVHSplitLinearPanics(t *testing.T) {
	assert.Panics(t, func() {
		Build(randomSpheres(4, 1), SplitLinear)
	})
}
