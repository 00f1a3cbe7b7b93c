package core

import "math"

// Bounds3 is an axis-aligned box [Min, Max]. The invariant Min <= Max
// holds componentwise for every non-default-constructed Bounds3.
type Bounds3 struct {
	Min, Max Point3
}

// NewBounds3 builds a Bounds3 from two corners in any order.
func NewBounds3(a, b Point3) Bounds3 {
	return Bounds3{
		Min: Point3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)},
		Max: Point3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)},
	}
}

// EmptyBounds3 returns a degenerate bounds with Min > Max, the identity
// element for Union.
func EmptyBounds3() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{Min: Point3{inf, inf, inf}, Max: Point3{-inf, -inf, -inf}}
}

// Union returns the smallest Bounds3 containing both b and other.
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return Bounds3{
		Min: Point3{math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)},
		Max: Point3{math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)},
	}
}

// UnionPoint returns the smallest Bounds3 containing both b and p.
func (b Bounds3) UnionPoint(p Point3) Bounds3 {
	return Bounds3{
		Min: Point3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: Point3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

func (b Bounds3) Center() Point3 {
	return b.Min.Add(b.Max.Subtract(b.Min).Multiply(0.5))
}

func (b Bounds3) Diagonal() Vector3 { return b.Max.Subtract(b.Min) }

func (b Bounds3) SurfaceArea() float64 {
	d := b.Diagonal()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
func (b Bounds3) LongestAxis() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// IsValid reports whether Min <= Max componentwise.
func (b Bounds3) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// IsDegenerate reports whether the bounds have zero extent on every axis
// (e.g. a set of coincident centroids), the condition that forces a BVH
// build to emit a leaf rather than try to split further.
func (b Bounds3) IsDegenerate() bool {
	d := b.Diagonal()
	return d.X <= 0 && d.Y <= 0 && d.Z <= 0
}

// Offset returns p expressed as a fraction of each axis of the box,
// with (0,0,0) at Min and (1,1,1) at Max.
func (b Bounds3) Offset(p Point3) Vector3 {
	o := p.Subtract(b.Min)
	d := b.Diagonal()
	if d.X > 0 {
		o.X /= d.X
	}
	if d.Y > 0 {
		o.Y /= d.Y
	}
	if d.Z > 0 {
		o.Z /= d.Z
	}
	return o
}

// BoundingSphere returns a center and radius that conservatively bound
// the box (center-to-corner distance).
func (b Bounds3) BoundingSphere() (Point3, float64) {
	center := b.Center()
	radius := 0.0
	if b.IsValid() {
		radius = b.Max.Subtract(center).Length()
	}
	return center, radius
}

// Expand returns Bounds3 grown by amount in every direction.
func (b Bounds3) Expand(amount float64) Bounds3 {
	e := Vector3{amount, amount, amount}
	return Bounds3{Min: b.Min.SubtractVec(e), Max: b.Max.Add(e)}
}

// Hit performs the classic two-t slab test; kept for simple callers that
// haven't precomputed an inverse direction.
func (b Bounds3) Hit(ray Ray, tMin, tMax float64) bool {
	invDir := Vector3{1 / ray.Direction.X, 1 / ray.Direction.Y, 1 / ray.Direction.Z}
	dirIsNeg := [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0}
	return b.IntersectP(ray, tMin, tMax, invDir, dirIsNeg)
}

// IntersectP performs the slab test using a precomputed inverse ray
// direction and per-axis sign bits (dirIsNeg[axis] is true when
// invDir[axis] < 0, i.e. the ray travels toward -axis). Each tMax is
// widened by 1+2*gamma(3) to stay conservative against floating point
// error in the interval test, per spec.md's Bounds3 slab-test invariant.
func (b Bounds3) IntersectP(ray Ray, tMin, tMax float64, invDir Vector3, dirIsNeg [3]bool) bool {
	bounds := [2]Point3{b.Min, b.Max}
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	invD := [3]float64{invDir.X, invDir.Y, invDir.Z}
	boundsAxis := func(i int, which int) float64 {
		switch i {
		case 0:
			return bounds[which].X
		case 1:
			return bounds[which].Y
		default:
			return bounds[which].Z
		}
	}

	t0, t1 := tMin, tMax
	for axis := 0; axis < 3; axis++ {
		near := boundsAxis(axis, 0)
		far := boundsAxis(axis, 1)
		if dirIsNeg[axis] {
			near, far = far, near
		}
		tNear := (near - origin[axis]) * invD[axis]
		tFar := (far - origin[axis]) * invD[axis]
		tFar *= 1 + 2*gamma(3)

		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return false
		}
	}
	return true
}
