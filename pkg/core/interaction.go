package core

// Interaction is the common hit-record base: a world-space point (with its
// conservative floating point error bound), the surface distance along the
// incident ray, the outgoing direction, and a geometric normal. It is
// embedded by SurfaceInteraction and stands alone for non-surface
// interactions (e.g. a point on a light source with no shape behind it).
type Interaction struct {
	P     Point3
	PErr  Vector3
	Time  float64
	Wo    Vector3
	N     Normal3
	Valid bool
}

// SpawnRay constructs a ray leaving the interaction point along d, offset
// by PErr along N so that the new ray's origin conservatively clears the
// error box of the surface it left and will not self-intersect it.
func (it Interaction) SpawnRay(d Vector3) Ray {
	origin := offsetRayOrigin(it.P, it.PErr, it.N, d)
	return NewRay(origin, d)
}

// SpawnRayTo constructs a ray from the interaction toward target, with
// TMax set just short of 1 so the ray stops at the target.
func (it Interaction) SpawnRayTo(target Point3) Ray {
	d := target.Subtract(it.P)
	origin := offsetRayOrigin(it.P, it.PErr, it.N, d)
	r := NewRay(origin, d)
	r.TMax = 1 - shadowEpsilon
	return r
}

const shadowEpsilon = 1e-4

// offsetRayOrigin nudges p along n (oriented to share a hemisphere with d)
// by the conservative error magnitude in PErr, then rounds each component
// away from p to the next representable float in that direction. This is
// the standard technique for avoiding shadow-acne self-intersection
// without an arbitrary epsilon bias.
func offsetRayOrigin(p Point3, pErr Vector3, n Normal3, d Vector3) Point3 {
	errDotN := n.Abs().Dot(pErr)
	offset := n.ToVector3().Multiply(errDotN)
	if d.DotNormal(n) < 0 {
		offset = offset.Negate()
	}
	po := p.Add(offset)

	for i := 0; i < 3; i++ {
		switch i {
		case 0:
			if offset.X > 0 {
				po.X = nextFloatUp(po.X)
			} else if offset.X < 0 {
				po.X = nextFloatDown(po.X)
			}
		case 1:
			if offset.Y > 0 {
				po.Y = nextFloatUp(po.Y)
			} else if offset.Y < 0 {
				po.Y = nextFloatDown(po.Y)
			}
		case 2:
			if offset.Z > 0 {
				po.Z = nextFloatUp(po.Z)
			} else if offset.Z < 0 {
				po.Z = nextFloatDown(po.Z)
			}
		}
	}
	return po
}

// ShadingGeometry holds a (possibly bump- or interpolated-normal-mapped)
// shading frame that can diverge from the true geometric normal.
type ShadingGeometry struct {
	N       Normal3
	DPDU    Vector3
	DPDV    Vector3
	DNDU    Normal3
	DNDV    Normal3
}

// SurfaceInteraction is the hit record produced by shape intersection: the
// embedded Interaction plus UV parameterization, surface partial
// derivatives, the shading frame, and (once populated by the primitive
// layer) the material and area light the surface belongs to.
//
// MaterialIndex/AreaLightIndex are indices into the scene's material/light
// tables rather than interface handles, so SurfaceInteraction stays a
// plain value type that shape intersection routines can return without
// importing the materials or lights packages (which import shapes).
type SurfaceInteraction struct {
	Interaction
	UV   Vec2
	DPDU Vector3
	DPDV Vector3
	DNDU Normal3
	DNDV Normal3

	Shading ShadingGeometry

	MaterialIndex int
	AreaLightIndex int

	// FaceIndex distinguishes triangles within a merged mesh, used by
	// some texture/material lookups; -1 when not applicable.
	FaceIndex int
}

// NewSurfaceInteraction builds a SurfaceInteraction with the shading frame
// initialized to the geometric frame, the common case for shapes without
// per-vertex shading normals.
func NewSurfaceInteraction(
	p Point3, pErr Vector3, uv Vec2,
	wo Vector3, dpdu, dpdv Vector3, dndu, dndv Normal3,
	time float64,
) SurfaceInteraction {
	n := dpdu.Cross(dpdv).ToNormal3().Normalize()
	si := SurfaceInteraction{
		Interaction: Interaction{P: p, PErr: pErr, Time: time, Wo: wo, N: n, Valid: true},
		UV:          uv,
		DPDU:        dpdu,
		DPDV:        dpdv,
		DNDU:        dndu,
		DNDV:        dndv,
		MaterialIndex:  -1,
		AreaLightIndex: -1,
		FaceIndex:      -1,
	}
	si.Shading = ShadingGeometry{N: n, DPDU: dpdu, DPDV: dpdv, DNDU: dndu, DNDV: dndv}
	return si
}

// SetShadingGeometry installs an interpolated shading frame (e.g. from
// per-vertex normals) and makes the two normals share a hemisphere: when
// orientationIsAuthoritative is set the geometric normal N is flipped to
// face the shading normal; otherwise the shading normal is flipped to
// face N and N keeps its sign.
func (si *SurfaceInteraction) SetShadingGeometry(ns Normal3, dpdus, dpdvs Vector3, dndus, dndvs Normal3, orientationIsAuthoritative bool) {
	si.Shading = ShadingGeometry{N: ns, DPDU: dpdus, DPDV: dpdvs, DNDU: dndus, DNDV: dndvs}
	if orientationIsAuthoritative {
		si.N = si.N.FaceWith(ns.ToVector3())
	} else {
		si.Shading.N = si.Shading.N.FaceWith(si.N.ToVector3())
	}
}
