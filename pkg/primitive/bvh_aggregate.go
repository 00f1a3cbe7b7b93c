package primitive

import (
	"github.com/quantplane/photon/pkg/accel"
	"github.com/quantplane/photon/pkg/core"
)

// BVHAggregate wraps accel.BVH so it satisfies Primitive, letting a tree
// of primitives be nested inside another aggregate (e.g. an object
// instance whose own geometry is itself a BVH).
type BVHAggregate struct {
	bvh *accel.BVH
}

// NewBVHAggregate builds a BVH over prims with the given split method.
func NewBVHAggregate(prims []Primitive, method accel.SplitMethod) *BVHAggregate {
	accelPrims := make([]accel.Primitive, len(prims))
	for i, p := range prims {
		accelPrims[i] = p
	}
	return &BVHAggregate{bvh: accel.Build(accelPrims, method)}
}

func (a *BVHAggregate) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	return a.bvh.Intersect(ray)
}

func (a *BVHAggregate) IntersectP(ray core.Ray) bool { return a.bvh.IntersectP(ray) }
func (a *BVHAggregate) WorldBounds() core.Bounds3    { return a.bvh.WorldBounds() }
