// Package primitive binds a Shape to a material and an optional area
// light, and composes primitives into aggregates (a flat list or a BVH).
// The teacher conflates shape and material into a single Shape; this
// layer exists so one shape can be reused by several primitives (e.g. the
// same mesh instanced with different materials).
package primitive

import "github.com/quantplane/photon/pkg/core"

// Primitive is the unit the scene's acceleration structure stores: either
// a single shape bound to a material and light, or an aggregate of other
// primitives (PrimitiveList, BVHAggregate).
type Primitive interface {
	Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool)
	IntersectP(ray core.Ray) bool
	WorldBounds() core.Bounds3
}

// GeometricPrimitive is a leaf: one shape, one material index, and an
// optional area light index (-1 if the primitive does not emit).
type GeometricPrimitive struct {
	Shape          Shape
	MaterialIndex  int
	AreaLightIndex int
}

// Shape is the subset of shapes.Shape this package depends on, declared
// locally to avoid an import cycle back through pkg/shapes (which has no
// need to know about primitives).
type Shape interface {
	Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool)
	IntersectP(ray core.Ray) bool
	WorldBounds() core.Bounds3
	Area() float64
}

func NewGeometricPrimitive(shape Shape, materialIndex, areaLightIndex int) *GeometricPrimitive {
	return &GeometricPrimitive{Shape: shape, MaterialIndex: materialIndex, AreaLightIndex: areaLightIndex}
}

func (p *GeometricPrimitive) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	si, tHit, ok := p.Shape.Intersect(ray)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}
	si.MaterialIndex = p.MaterialIndex
	si.AreaLightIndex = p.AreaLightIndex
	return si, tHit, true
}

func (p *GeometricPrimitive) IntersectP(ray core.Ray) bool { return p.Shape.IntersectP(ray) }
func (p *GeometricPrimitive) WorldBounds() core.Bounds3    { return p.Shape.WorldBounds() }

// PrimitiveList is an unaccelerated aggregate: a brute-force linear scan,
// used for small primitive counts (e.g. inside a BVH leaf, or for a scene
// too small to be worth building a tree for).
type PrimitiveList struct {
	Primitives []Primitive
}

func NewPrimitiveList(prims []Primitive) *PrimitiveList {
	return &PrimitiveList{Primitives: prims}
}

func (l *PrimitiveList) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	var closest core.SurfaceInteraction
	var closestT float64
	hitAnything := false
	r := ray
	for _, p := range l.Primitives {
		if si, t, ok := p.Intersect(r); ok {
			hitAnything = true
			closestT = t
			closest = si
			r.TMax = t
		}
	}
	return closest, closestT, hitAnything
}

func (l *PrimitiveList) IntersectP(ray core.Ray) bool {
	for _, p := range l.Primitives {
		if p.IntersectP(ray) {
			return true
		}
	}
	return false
}

func (l *PrimitiveList) WorldBounds() core.Bounds3 {
	b := core.EmptyBounds3()
	for _, p := range l.Primitives {
		b = b.Union(p.WorldBounds())
	}
	return b
}
