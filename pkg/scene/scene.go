// Package scene assembles the primitives, materials, and lights a parsed
// scene file describes into the structure the integrator renders against.
// Grounded on the teacher's pkg/scene/scene.go Scene struct and its
// Preprocess method (BVH build + light preprocessing), rebuilt around
// this renderer's index-based primitive/material/light wiring (the
// primitive package's GeometricPrimitive stamps a MaterialIndex and
// AreaLightIndex rather than holding an interface-typed Material
// directly).
package scene

import (
	"github.com/quantplane/photon/pkg/accel"
	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/lights"
	"github.com/quantplane/photon/pkg/materials"
	"github.com/quantplane/photon/pkg/primitive"
)

// Scene is the fully preprocessed, render-ready scene: an acceleration
// structure over every primitive, the material table primitives index
// into, and the light list (with a parallel area-light lookup so a
// surface hit stamped with AreaLightIndex can find the light it belongs
// to without a linear scan).
type Scene struct {
	accel      primitive.Primitive
	materials  []materials.Material
	lightList  []lights.Light
	areaLights []lights.Light // indexed by GeometricPrimitive.AreaLightIndex; entry is nil if that slot has no light
	bounds     core.Bounds3
}

// New builds the acceleration structure over prims and preprocesses every
// light against the resulting world bounds, per spec.md §6's adapter
// contract: from(parsed) builds primitives/lights from a parsed scene
// record.
func New(prims []primitive.Primitive, materialList []materials.Material, lightList []lights.Light, areaLights []lights.Light, splitMethod accel.SplitMethod) *Scene {
	var bvh primitive.Primitive
	if len(prims) == 0 {
		bvh = primitive.NewPrimitiveList(nil)
	} else {
		bvh = primitive.NewBVHAggregate(prims, splitMethod)
	}

	bounds := bvh.WorldBounds()
	for _, l := range lightList {
		l.Preprocess(bounds)
	}

	return &Scene{
		accel:      bvh,
		materials:  materialList,
		lightList:  lightList,
		areaLights: areaLights,
		bounds:     bounds,
	}
}

// Intersect finds the closest primitive the ray hits, if any.
func (s *Scene) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	si, _, ok := s.accel.Intersect(ray)
	return si, ok
}

// AnyIntersect reports whether ray hits any primitive at all, without
// finding the closest one. Used for occlusion (shadow) tests, where only
// the existence of a blocker matters.
func (s *Scene) AnyIntersect(ray core.Ray) bool {
	return s.accel.IntersectP(ray)
}

// Lights returns every light in the scene.
func (s *Scene) Lights() []lights.Light { return s.lightList }

// Material returns the material at index, or nil if index is out of
// range (a surface with no material binding, e.g. during tests).
func (s *Scene) Material(index int) materials.Material {
	if index < 0 || index >= len(s.materials) {
		return nil
	}
	return s.materials[index]
}

// AreaLight returns the area light bound to index (a surface's
// AreaLightIndex), or nil if index is negative, out of range, or that
// slot has no light.
func (s *Scene) AreaLight(index int) lights.Light {
	if index < 0 || index >= len(s.areaLights) {
		return nil
	}
	return s.areaLights[index]
}

// WorldBounds returns the scene's world-space bounding box.
func (s *Scene) WorldBounds() core.Bounds3 { return s.bounds }
