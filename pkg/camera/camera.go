// Package camera implements the perspective camera and film spec.md §4.7
// names: a raster-to-camera-to-world transform chain that turns a film
// sample into a world-space ray, and a lock-guarded pixel buffer that
// accumulates samples. Grounded on the teacher's renderer.Camera
// (origin/corner/horizontal/vertical ray generation) generalized to the
// PBRT transform-chain construction spec.md §4.7 specifies, since the
// teacher's camera has no notion of raster space, screen windows, or ray
// differentials.
package camera

import (
	"fmt"
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// ScreenWindow is the axis-aligned rectangle in screen space (y-up, camera
// looking down +Z) the film maps onto.
type ScreenWindow struct {
	Min, Max core.Vec2
}

// Sample is what a sampler hands the camera: a jittered film-space point
// (and, unused until depth of field is implemented, a lens point).
type Sample struct {
	FilmPoint core.Vec2
	LensPoint core.Vec2
}

// PerspectiveCamera generates world-space rays from film samples. Depth of
// field (LensRadius > 0) is an explicitly unsupported feature: the
// constructor accepts it so scene files can name it, but GenerateRay
// panics rather than silently ignoring it, per spec.md §7 category 2.
type PerspectiveCamera struct {
	cameraToWorld  core.Transform
	rasterToCamera core.Transform
	lensRadius     float64

	pixelRayDx core.Vector3
	pixelRayDy core.Vector3
}

// NewPerspectiveCamera builds the camera-to-screen, screen-to-raster, and
// raster-to-camera transforms per spec.md §4.7, and caches the per-pixel
// ray-differential offsets.
func NewPerspectiveCamera(cameraToWorld core.Transform, window ScreenWindow, fovDegrees float64, resX, resY int, lensRadius float64) *PerspectiveCamera {
	cameraToScreen := core.Perspective(fovDegrees, 0.01, 1000)

	dx := window.Max.X - window.Min.X
	dy := window.Max.Y - window.Min.Y

	screenToRaster := core.Scale(float64(resX), float64(resY), 1).
		Compose(core.Scale(1/dx, 1/dy, 1)).
		Compose(core.Translate(core.NewVector3(-window.Min.X, -window.Min.Y, 0)))

	rasterToCamera := screenToRaster.Compose(cameraToScreen).Inverse()

	c := &PerspectiveCamera{
		cameraToWorld:  cameraToWorld,
		rasterToCamera: rasterToCamera,
		lensRadius:     lensRadius,
	}

	origin := rasterToCamera.Point(core.NewPoint3(0, 0, 0))
	px := rasterToCamera.Point(core.NewPoint3(1, 0, 0))
	py := rasterToCamera.Point(core.NewPoint3(0, 1, 0))
	c.pixelRayDx = px.Subtract(origin)
	c.pixelRayDy = py.Subtract(origin)

	return c
}

// GenerateRay builds the world-space ray through a film sample. Weight is
// always 1 for this camera model (no vignetting/lens falloff modeled).
func (c *PerspectiveCamera) GenerateRay(s Sample) (float64, core.Ray) {
	if c.lensRadius > 0 {
		panic("camera: depth of field (lens_radius > 0) is not implemented")
	}
	pCamera := c.rasterToCamera.Point(core.NewPoint3(s.FilmPoint.X, s.FilmPoint.Y, 0))
	dir := pCamera.ToVector3().Normalize()
	ray := core.NewRay(core.NewPoint3(0, 0, 0), dir)
	ray.TMax = math.Inf(1)
	return 1, c.cameraToWorld.Ray(ray)
}

// GenerateRayDifferential is GenerateRay plus the two auxiliary rays whose
// directions are normalize(P_camera + pixelRayDx) and + pixelRayDy; since
// this is a pinhole camera (no lens), the auxiliary rays share the
// primary's origin.
func (c *PerspectiveCamera) GenerateRayDifferential(s Sample) (float64, core.RayDifferential) {
	if c.lensRadius > 0 {
		panic("camera: depth of field (lens_radius > 0) is not implemented")
	}
	pCamera := c.rasterToCamera.Point(core.NewPoint3(s.FilmPoint.X, s.FilmPoint.Y, 0))
	dir := pCamera.ToVector3().Normalize()
	rxDir := pCamera.ToVector3().Add(c.pixelRayDx).Normalize()
	ryDir := pCamera.ToVector3().Add(c.pixelRayDy).Normalize()

	ray := core.NewRay(core.NewPoint3(0, 0, 0), dir)
	ray.TMax = math.Inf(1)
	worldRay := c.cameraToWorld.Ray(ray)

	rd := core.NewRayDifferential(worldRay)
	rd.HasDifferentials = true
	rd.RxOrigin = worldRay.Origin
	rd.RyOrigin = worldRay.Origin
	rd.RxDirection = c.cameraToWorld.Vector(rxDir)
	rd.RyDirection = c.cameraToWorld.Vector(ryDir)

	return 1, rd
}

func (c *PerspectiveCamera) String() string {
	return fmt.Sprintf("PerspectiveCamera{lensRadius=%g}", c.lensRadius)
}
