package shapes

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// Disk lies in the object-space plane z = Height, spanning radii
// [InnerRadius, Radius] and the full azimuthal range.
type Disk struct {
	ObjectToWorld core.Transform
	WorldToObject core.Transform
	Height        float64
	Radius        float64
	InnerRadius   float64
}

func NewDisk(objectToWorld core.Transform, height, radius, innerRadius float64) *Disk {
	return &Disk{
		ObjectToWorld: objectToWorld,
		WorldToObject: objectToWorld.Inverse(),
		Height:        height,
		Radius:        radius,
		InnerRadius:   innerRadius,
	}
}

func (d *Disk) WorldBounds() core.Bounds3 {
	objBounds := core.NewBounds3(
		core.NewPoint3(-d.Radius, -d.Radius, d.Height),
		core.NewPoint3(d.Radius, d.Radius, d.Height),
	)
	return d.ObjectToWorld.Bounds(objBounds)
}

func (d *Disk) Area() float64 {
	return math.Pi * (d.Radius*d.Radius - d.InnerRadius*d.InnerRadius)
}

func (d *Disk) objectSpaceHit(ray core.Ray) (core.Point3, float64, float64, bool) {
	oRay := d.WorldToObject.Ray(ray)

	if oRay.Direction.Z == 0 {
		return core.Point3{}, 0, 0, false
	}
	t := (d.Height - oRay.Origin.Z) / oRay.Direction.Z
	if t <= 0 || t >= oRay.TMax {
		return core.Point3{}, 0, 0, false
	}

	pHit := oRay.At(t)
	dist2 := pHit.X*pHit.X + pHit.Y*pHit.Y
	if dist2 > d.Radius*d.Radius || dist2 < d.InnerRadius*d.InnerRadius {
		return core.Point3{}, 0, 0, false
	}
	return pHit, t, math.Sqrt(dist2), true
}

func (d *Disk) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	pHit, tHit, rHit, ok := d.objectSpaceHit(ray)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}

	phi := math.Atan2(pHit.Y, pHit.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	u := phi / (2 * math.Pi)
	v := 1 - (rHit-d.InnerRadius)/(d.Radius-d.InnerRadius)

	dpdu := core.NewVector3(-2*math.Pi*pHit.Y, 2*math.Pi*pHit.X, 0)
	dpdv := core.NewVector3(pHit.X, pHit.Y, 0).Multiply(-(d.Radius - d.InnerRadius) / rHit)
	dndu, dndv := core.Normal3{}, core.Normal3{}

	pErr := core.Vector3{}
	woObj := d.WorldToObject.Vector(ray.Direction.Negate())
	si := core.NewSurfaceInteraction(pHit, pErr, core.NewVec2(u, v), woObj, dpdu, dpdv, dndu, dndv, 0)

	worldP, worldPErr := d.ObjectToWorld.PointWithError(pHit, pErr)
	si.P = worldP
	si.PErr = worldPErr
	si.N = d.ObjectToWorld.Normal(core.NewNormal3(0, 0, 1)).Normalize()
	si.Shading.N = si.N
	si.DPDU = d.ObjectToWorld.Vector(dpdu)
	si.DPDV = d.ObjectToWorld.Vector(dpdv)
	si.Shading.DPDU, si.Shading.DPDV = si.DPDU, si.DPDV
	si.Wo = d.ObjectToWorld.Vector(woObj).Normalize()

	return si, tHit, true
}

func (d *Disk) IntersectP(ray core.Ray) bool {
	_, _, _, ok := d.objectSpaceHit(ray)
	return ok
}

// SampleArea draws a point uniformly over the disk's (possibly annular)
// surface, returning it (with the disk's outward normal) in world space.
func (d *Disk) SampleArea(u core.Vec2) (core.Point3, core.Normal3) {
	r := math.Sqrt(u.X*(d.Radius*d.Radius-d.InnerRadius*d.InnerRadius) + d.InnerRadius*d.InnerRadius)
	theta := 2 * math.Pi * u.Y
	objP := core.NewPoint3(r*math.Cos(theta), r*math.Sin(theta), d.Height)

	worldP := d.ObjectToWorld.Point(objP)
	worldN := d.ObjectToWorld.Normal(core.NewNormal3(0, 0, 1)).Normalize()
	return worldP, worldN
}
