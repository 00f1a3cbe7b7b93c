package shapes

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// Sphere is a full sphere of the given radius, centered at the origin of
// its own object space, placed in the scene by ObjectToWorld.
type Sphere struct {
	ObjectToWorld core.Transform
	WorldToObject core.Transform
	Radius        float64
}

func NewSphere(objectToWorld core.Transform, radius float64) *Sphere {
	return &Sphere{
		ObjectToWorld: objectToWorld,
		WorldToObject: objectToWorld.Inverse(),
		Radius:        radius,
	}
}

func (s *Sphere) WorldBounds() core.Bounds3 {
	r := core.NewVector3(s.Radius, s.Radius, s.Radius)
	objBounds := core.NewBounds3(
		core.Point3{}.SubtractVec(r),
		core.Point3{}.Add(r),
	)
	return s.ObjectToWorld.Bounds(objBounds)
}

func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// objectSpaceHit runs the shared quadratic-intersection algorithm in
// object space, returning the hit point, its gamma(5)-scaled error vector,
// the hit parameter t, and whether a hit in range was found.
func (s *Sphere) objectSpaceHit(ray core.Ray) (core.Point3, core.Vector3, float64, bool) {
	oRay, oErr := s.WorldToObject.RayWithError(ray, core.Vector3{})

	ox := core.NewErrorFloatBounds(oRay.Origin.X, oErr.X)
	oy := core.NewErrorFloatBounds(oRay.Origin.Y, oErr.Y)
	oz := core.NewErrorFloatBounds(oRay.Origin.Z, oErr.Z)
	dx := core.NewErrorFloatBounds(oRay.Direction.X, 0)
	dy := core.NewErrorFloatBounds(oRay.Direction.Y, 0)
	dz := core.NewErrorFloatBounds(oRay.Direction.Z, 0)

	a := dx.Multiply(dx).Add(dy.Multiply(dy)).Add(dz.Multiply(dz))
	b := ox.Multiply(dx).Add(oy.Multiply(dy)).Add(oz.Multiply(dz)).MultiplyScalar(2)
	r2 := core.NewErrorFloatBounds(s.Radius*s.Radius, 0)
	c := ox.Multiply(ox).Add(oy.Multiply(oy)).Add(oz.Multiply(oz)).Subtract(r2)

	t0, t1, ok := core.QuadraticErrorFloat(a, b, c)
	if !ok {
		return core.Point3{}, core.Vector3{}, 0, false
	}
	if t0.High > oRay.TMax || t1.Low <= 0 {
		return core.Point3{}, core.Vector3{}, 0, false
	}

	tShape := t0
	if tShape.Low <= 0 {
		tShape = t1
		if tShape.High > oRay.TMax {
			return core.Point3{}, core.Vector3{}, 0, false
		}
	}

	pHit := oRay.At(tShape.Value)
	// Refine: rescale to lie exactly on the sphere of radius Radius.
	pHit = pHit.ToVector3().Multiply(s.Radius / pHit.ToVector3().Length()).ToPoint3()
	if pHit.X == 0 && pHit.Y == 0 {
		pHit.X = 1e-10 * s.Radius
	}

	pErr := pHit.ToVector3().Abs().Multiply(core.Gamma(5)).ToVector3()
	return pHit, pErr, tShape.Value, true
}

func (s *Sphere) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	pHit, pErr, tHit, ok := s.objectSpaceHit(ray)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}

	phi := math.Atan2(pHit.Y, pHit.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(core.Clamp(pHit.Z/s.Radius, -1, 1))

	u := phi / (2 * math.Pi)
	v := theta / math.Pi

	zRadius := math.Sqrt(pHit.X*pHit.X + pHit.Y*pHit.Y)
	var cosPhi, sinPhi float64
	if zRadius == 0 {
		cosPhi, sinPhi = 1, 0
	} else {
		cosPhi, sinPhi = pHit.X/zRadius, pHit.Y/zRadius
	}

	dpdu := core.NewVector3(-2*math.Pi*pHit.Y, 2*math.Pi*pHit.X, 0)
	dpdv := core.NewVector3(pHit.Z*cosPhi, pHit.Z*sinPhi, -s.Radius*math.Sin(theta)).Multiply(math.Pi)

	d2Pduu := core.NewVector3(pHit.X, pHit.Y, 0).Multiply(-4 * math.Pi * math.Pi)
	d2Pduv := core.NewVector3(-sinPhi, cosPhi, 0).Multiply(2 * math.Pi * math.Pi * pHit.Z)
	d2Pdvv := core.NewVector3(pHit.X, pHit.Y, pHit.Z).Multiply(-math.Pi * math.Pi)

	E := dpdu.Dot(dpdu)
	F := dpdu.Dot(dpdv)
	G := dpdv.Dot(dpdv)
	n := dpdu.Cross(dpdv).Normalize()
	e := n.Dot(d2Pduu)
	f := n.Dot(d2Pduv)
	g := n.Dot(d2Pdvv)

	invEGF2 := 1.0
	denom := E*G - F*F
	if denom != 0 {
		invEGF2 = 1.0 / denom
	}
	dndu := dpdu.Multiply((f*F - e*G) * invEGF2).Add(dpdv.Multiply((e*F - f*E) * invEGF2)).ToNormal3()
	dndv := dpdu.Multiply((g*F - f*G) * invEGF2).Add(dpdv.Multiply((f*F - g*E) * invEGF2)).ToNormal3()

	woObj := s.WorldToObject.Vector(ray.Direction.Negate())
	si := core.NewSurfaceInteraction(pHit, pErr, core.NewVec2(u, v), woObj, dpdu, dpdv, dndu, dndv, 0)

	worldP, worldPErr := s.ObjectToWorld.PointWithError(pHit, pErr)
	si.P = worldP
	si.PErr = worldPErr
	si.N = s.ObjectToWorld.Normal(si.N).Normalize()
	si.Shading.N = si.N
	si.DPDU = s.ObjectToWorld.Vector(dpdu)
	si.DPDV = s.ObjectToWorld.Vector(dpdv)
	si.DNDU = s.ObjectToWorld.Normal(dndu)
	si.DNDV = s.ObjectToWorld.Normal(dndv)
	si.Shading.DPDU, si.Shading.DPDV = si.DPDU, si.DPDV
	si.Shading.DNDU, si.Shading.DNDV = si.DNDU, si.DNDV
	si.Wo = s.ObjectToWorld.Vector(woObj).Normalize()

	return si, tHit, true
}

func (s *Sphere) IntersectP(ray core.Ray) bool {
	_, _, _, ok := s.objectSpaceHit(ray)
	return ok
}

// SampleArea draws a point uniformly over the sphere's surface via the
// standard z/phi parameterization, returning it (with its outward normal)
// in world space.
func (s *Sphere) SampleArea(u core.Vec2) (core.Point3, core.Normal3) {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	objN := core.NewNormal3(r*math.Cos(phi), r*math.Sin(phi), z)
	objP := objN.ToVector3().Multiply(s.Radius).ToPoint3()

	worldP := s.ObjectToWorld.Point(objP)
	worldN := s.ObjectToWorld.Normal(objN).Normalize()
	return worldP, worldN
}
