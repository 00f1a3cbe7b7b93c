// Package lights implements the Light family: Point and DiffuseArea. Both
// expose the same interface the integrator drives — preprocess, power,
// background radiance for rays that escape the scene, a direct-lighting
// sample, and (for area lights) emitted radiance toward a given direction —
// grounded on the teacher's pkg/lights/interfaces.go Light/LightSample
// shape, narrowed to the two light kinds this renderer names.
package lights

import "github.com/quantplane/photon/pkg/core"

// RadianceSample is the result of Light.SampleRadiance: a candidate
// direct-lighting contribution from a shading point toward the light,
// together with the information the integrator needs to build an
// occlusion ray without recomputing the light geometry.
type RadianceSample struct {
	Color      core.Spectrum
	Wi         core.Vector3
	PDF        float64
	LightPoint core.Point3
	LightPErr  core.Vector3
	LightN     core.Normal3
	Valid      bool
}

// Light is implemented by every emitter kind the scene can hold.
type Light interface {
	// Preprocess is called once the scene's world bounds are known, for
	// light kinds (not yet present in this renderer) whose sampling
	// distribution depends on scene extent. Point and DiffuseArea are
	// local, so both accept this as a no-op.
	Preprocess(worldBounds core.Bounds3)

	// Power is the light's total emitted power, used by a light sampler
	// to weight selection probability across multiple lights.
	Power() core.Spectrum

	// BackgroundRadiance is the contribution a light makes to a ray that
	// escaped the scene without hitting any primitive. Finite lights
	// (Point, DiffuseArea) return black.
	BackgroundRadiance(ray core.Ray) core.Spectrum

	// SampleRadiance samples this light for direct lighting at the given
	// shading interaction, using u as the light-surface sample.
	SampleRadiance(it core.Interaction, u core.Vec2) RadianceSample

	// Emit returns the radiance this light emits toward direction from
	// interaction it, for an area light whose surface the integrator's
	// ray happened to hit directly (not via SampleRadiance).
	Emit(it core.SurfaceInteraction, direction core.Vector3) core.Spectrum
}
