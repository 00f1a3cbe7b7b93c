package shapes

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// TriangleMesh stores a batch of triangles' world-space vertex, normal,
// and tangent data once; individual Triangle shapes reference it plus an
// offset into the index array, so a shared mesh is not copied per face.
type TriangleMesh struct {
	Vertices []core.Point3
	Normals  []core.Normal3 // may be nil: no per-vertex shading normals
	Tangents []core.Vector3 // may be nil: no per-vertex tangents
	UVs      []core.Vec2    // may be nil: default UVs are used
	Indices  []int          // triples, one per triangle
}

// Triangle references mesh starting at Indices[3*FaceIndex].
type Triangle struct {
	Mesh      *TriangleMesh
	FaceIndex int
}

func NewTriangle(mesh *TriangleMesh, faceIndex int) *Triangle {
	return &Triangle{Mesh: mesh, FaceIndex: faceIndex}
}

func (t *Triangle) vertices() (p0, p1, p2 core.Point3) {
	i := t.Mesh.Indices
	base := 3 * t.FaceIndex
	v := t.Mesh.Vertices
	return v[i[base]], v[i[base+1]], v[i[base+2]]
}

func (t *Triangle) WorldBounds() core.Bounds3 {
	p0, p1, p2 := t.vertices()
	b := core.NewBounds3(p0, p1)
	return b.UnionPoint(p2)
}

func (t *Triangle) Area() float64 {
	p0, p1, p2 := t.vertices()
	return 0.5 * p1.Subtract(p0).Cross(p2.Subtract(p0)).Length()
}

// Intersect implements the watertight ray-triangle test of Woop et al.:
// translate vertices so the ray origin is at the coordinate origin,
// permute axes so the ray's dominant direction lands on z, shear x/y so
// the ray direction becomes +z, then test edge functions in the sheared
// space. This guarantees no gaps or double-hits at shared triangle edges,
// regardless of floating point rounding.
func (t *Triangle) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	p0, p1, p2 := t.vertices()

	kz := ray.Direction.Abs().MaxDimension()
	kx := kz + 1
	if kx == 3 {
		kx = 0
	}
	ky := kx + 1
	if ky == 3 {
		ky = 0
	}

	d := ray.Direction.Permute(kx, ky, kz)
	p0t := p0.Subtract(ray.Origin).Permute(kx, ky, kz)
	p1t := p1.Subtract(ray.Origin).Permute(kx, ky, kz)
	p2t := p2.Subtract(ray.Origin).Permute(kx, ky, kz)

	sx := -d.X / d.Z
	sy := -d.Y / d.Z
	sz := 1.0 / d.Z

	p0t.X += sx * p0t.Z
	p0t.Y += sy * p0t.Z
	p1t.X += sx * p1t.Z
	p1t.Y += sy * p1t.Z
	p2t.X += sx * p2t.Z
	p2t.Y += sy * p2t.Z

	e0 := p1t.X*p2t.Y - p1t.Y*p2t.X
	e1 := p2t.X*p0t.Y - p2t.Y*p0t.X
	e2 := p0t.X*p1t.Y - p0t.Y*p1t.X

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return core.SurfaceInteraction{}, 0, false
	}
	det := e0 + e1 + e2
	if det == 0 {
		return core.SurfaceInteraction{}, 0, false
	}

	p0tz := p0t.Z * sz
	p1tz := p1t.Z * sz
	p2tz := p2t.Z * sz
	tScaled := e0*p0tz + e1*p1tz + e2*p2tz

	if det < 0 && (tScaled >= 0 || tScaled < ray.TMax*det) {
		return core.SurfaceInteraction{}, 0, false
	}
	if det > 0 && (tScaled <= 0 || tScaled > ray.TMax*det) {
		return core.SurfaceInteraction{}, 0, false
	}

	invDet := 1.0 / det
	b0 := e0 * invDet
	b1 := e1 * invDet
	b2 := e2 * invDet
	tHit := tScaled * invDet

	pHit := core.Point3{
		X: b0*p0.X + b1*p1.X + b2*p2.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y,
		Z: b0*p0.Z + b1*p1.Z + b2*p2.Z,
	}
	maxAbsP := math.Max(math.Abs(pHit.X), math.Max(math.Abs(pHit.Y), math.Abs(pHit.Z)))
	pErrMag := maxAbsP * core.Gamma(7)
	pErr := core.NewVector3(pErrMag, pErrMag, pErrMag)

	uv := t.uvs()
	stHit := core.Vec2{
		X: b0*uv[0].X + b1*uv[1].X + b2*uv[2].X,
		Y: b0*uv[0].Y + b1*uv[1].Y + b2*uv[2].Y,
	}

	dp02 := p0.Subtract(p2)
	dp12 := p1.Subtract(p2)
	duv02 := core.Vec2{X: uv[0].X - uv[2].X, Y: uv[0].Y - uv[2].Y}
	duv12 := core.Vec2{X: uv[1].X - uv[2].X, Y: uv[1].Y - uv[2].Y}
	uvDet := duv02.X*duv12.Y - duv02.Y*duv12.X

	var dpdu, dpdv core.Vector3
	if uvDet == 0 {
		ng := dp02.Cross(dp12)
		if ng.LengthSquared() == 0 {
			return core.SurfaceInteraction{}, 0, false
		}
		dpdu, dpdv = core.CoordinateSystem(ng.Normalize())
	} else {
		invUVDet := 1.0 / uvDet
		dpdu = dp02.Multiply(duv12.Y).Subtract(dp12.Multiply(duv02.Y)).Multiply(invUVDet)
		dpdv = dp12.Multiply(duv02.X).Subtract(dp02.Multiply(duv12.X)).Multiply(invUVDet)
	}

	wo := ray.Direction.Negate()
	si := core.NewSurfaceInteraction(pHit, pErr, stHit, wo, dpdu, dpdv, core.Normal3{}, core.Normal3{}, 0)
	si.FaceIndex = t.FaceIndex

	geomN := dp02.Cross(dp12).ToNormal3().Normalize()
	si.N = geomN
	si.Shading.N = geomN

	if t.Mesh.Normals != nil {
		ns := t.interpolatedNormal(b0, b1, b2)
		si.SetShadingGeometry(ns, dpdu, dpdv, core.Normal3{}, core.Normal3{}, false)
	}

	return si, tHit, true
}

func (t *Triangle) interpolatedNormal(b0, b1, b2 float64) core.Normal3 {
	i := t.Mesh.Indices
	base := 3 * t.FaceIndex
	n := t.Mesh.Normals
	n0, n1, n2 := n[i[base]], n[i[base+1]], n[i[base+2]]
	ns := n0.Multiply(b0).Add(n1.Multiply(b1)).Add(n2.Multiply(b2))
	if ns.Length() == 0 {
		return core.Normal3{}
	}
	return ns.Normalize()
}

func (t *Triangle) uvs() [3]core.Vec2 {
	if t.Mesh.UVs == nil {
		return [3]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	}
	i := t.Mesh.Indices
	base := 3 * t.FaceIndex
	return [3]core.Vec2{t.Mesh.UVs[i[base]], t.Mesh.UVs[i[base+1]], t.Mesh.UVs[i[base+2]]}
}

func (t *Triangle) IntersectP(ray core.Ray) bool {
	_, _, ok := t.Intersect(ray)
	return ok
}

// SampleArea draws a point uniformly over the triangle via the standard
// square-root barycentric mapping, returning the geometric (not
// interpolated shading) normal — area sampling for direct lighting only
// needs a consistent outward-facing orientation.
func (t *Triangle) SampleArea(u core.Vec2) (core.Point3, core.Normal3) {
	su0 := math.Sqrt(u.X)
	b0 := 1 - su0
	b1 := u.Y * su0
	b2 := 1 - b0 - b1

	p0, p1, p2 := t.vertices()
	p := core.Point3{
		X: b0*p0.X + b1*p1.X + b2*p2.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y,
		Z: b0*p0.Z + b1*p1.Z + b2*p2.Z,
	}
	n := p1.Subtract(p0).Cross(p2.Subtract(p0)).ToNormal3().Normalize()
	return p, n
}
