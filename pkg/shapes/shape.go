// Package shapes implements ray-vs-primitive intersection for the shape
// kinds the renderer knows about: sphere, disk, and triangle (via a
// shared TriangleMesh). Every shape owns an object-to-world transform and
// returns hit records already transformed into world space.
package shapes

import "github.com/quantplane/photon/pkg/core"

// Shape is the common interface implemented by Sphere, Disk, and Triangle.
type Shape interface {
	// Intersect finds the closest hit along ray in (0, ray.TMax), returning
	// the populated world-space surface interaction and the parametric
	// hit distance. ok is false if there is no hit in range.
	Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool)

	// IntersectP is a cheaper existence-only test, used for shadow rays.
	IntersectP(ray core.Ray) bool

	// WorldBounds returns the shape's bounding box in world space.
	WorldBounds() core.Bounds3

	// Area returns the shape's surface area in world space, used by area
	// lights to normalize emitted radiance.
	Area() float64
}
