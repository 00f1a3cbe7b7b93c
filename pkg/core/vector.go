// Package core implements the geometry kernel: vectors, points, normals,
// rays, transforms, bounds, and the error-tracked floating point machinery
// the rest of the renderer builds on.
package core

import (
	"fmt"
	"math"
)

// Vector3 represents a displacement in 3-space. Unlike Point3, a Vector3
// does not translate under an affine transform.
type Vector3 struct {
	X, Y, Z float64
}

// Point3 represents a location in 3-space. Unlike Vector3, a Point3
// translates under an affine transform.
type Point3 struct {
	X, Y, Z float64
}

// Normal3 represents a surface normal. Normals transform by the
// inverse-transpose of the active transform, not the forward transform,
// so they stay perpendicular to the transformed surface.
type Normal3 struct {
	X, Y, Z float64
}

// Vec2 is a 2D vector, used for texture coordinates and sample positions.
type Vec2 struct {
	X, Y float64
}

func NewVector3(x, y, z float64) Vector3 { return Vector3{x, y, z} }
func NewPoint3(x, y, z float64) Point3   { return Point3{x, y, z} }
func NewNormal3(x, y, z float64) Normal3 { return Normal3{x, y, z} }
func NewVec2(x, y float64) Vec2          { return Vec2{x, y} }

func (v Vector3) String() string { return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z) }
func (p Point3) String() string  { return fmt.Sprintf("{%.4g, %.4g, %.4g}", p.X, p.Y, p.Z) }
func (n Normal3) String() string { return fmt.Sprintf("{%.4g, %.4g, %.4g}", n.X, n.Y, n.Z) }

// ToVector3 reinterprets a Point3 as a displacement from the origin.
func (p Point3) ToVector3() Vector3 { return Vector3{p.X, p.Y, p.Z} }

// ToPoint3 reinterprets a Vector3 as a location relative to the origin.
func (v Vector3) ToPoint3() Point3 { return Point3{v.X, v.Y, v.Z} }

// ToVector3 reinterprets a Normal3 as a plain direction, dropping the
// transform-law distinction (used only where the caller already knows it
// is safe, e.g. feeding a shading-frame basis vector).
func (n Normal3) ToVector3() Vector3 { return Vector3{n.X, n.Y, n.Z} }

// ToNormal3 reinterprets a Vector3 as a Normal3. Only valid when the
// caller has already arranged for proper inverse-transpose transform
// semantics upstream (e.g. cross products of transformed tangents).
func (v Vector3) ToNormal3() Normal3 { return Normal3{v.X, v.Y, v.Z} }

// --- Vector3 arithmetic ---

func (v Vector3) Add(o Vector3) Vector3      { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Subtract(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Multiply(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Negate() Vector3            { return Vector3{-v.X, -v.Y, -v.Z} }

func (v Vector3) Length() float64        { return math.Sqrt(v.LengthSquared()) }
func (v Vector3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vector3) Dot(o Vector3) float64    { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector3) AbsDot(o Vector3) float64 { return math.Abs(v.Dot(o)) }

func (v Vector3) DotNormal(n Normal3) float64 { return v.X*n.X + v.Y*n.Y + v.Z*n.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) MultiplyVec(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return Vector3{}
	}
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vector3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v Vector3) Abs() Vector3 {
	return Vector3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

func (v Vector3) MaxComponent() float64 { return math.Max(v.X, math.Max(v.Y, v.Z)) }

// MaxDimension returns the index (0=X, 1=Y, 2=Z) of the largest-magnitude
// component; used by the watertight triangle test to pick the dominant axis.
func (v Vector3) MaxDimension() int {
	a := v.Abs()
	if a.X > a.Y && a.X > a.Z {
		return 0
	}
	if a.Y > a.Z {
		return 1
	}
	return 2
}

// Permute reorders components according to the given axis indices.
func (v Vector3) Permute(kx, ky, kz int) Vector3 {
	c := [3]float64{v.X, v.Y, v.Z}
	return Vector3{c[kx], c[ky], c[kz]}
}

func (p Point3) Permute(kx, ky, kz int) Point3 {
	c := [3]float64{p.X, p.Y, p.Z}
	return Point3{c[kx], c[ky], c[kz]}
}

// Component returns the i-th component (0=X, 1=Y, 2=Z).
func (v Vector3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (p Point3) Component(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Equals compares two Vector3 values with a small tolerance.
func (v Vector3) Equals(o Vector3) bool {
	const tol = 1e-9
	return math.Abs(v.X-o.X) < tol && math.Abs(v.Y-o.Y) < tol && math.Abs(v.Z-o.Z) < tol
}

// --- Point3 arithmetic ---

func (p Point3) Add(v Vector3) Point3        { return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }
func (p Point3) Subtract(o Point3) Vector3   { return Vector3{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }
func (p Point3) SubtractVec(v Vector3) Point3 { return Point3{p.X - v.X, p.Y - v.Y, p.Z - v.Z} }

func (p Point3) Distance(o Point3) float64        { return p.Subtract(o).Length() }
func (p Point3) DistanceSquared(o Point3) float64 { return p.Subtract(o).LengthSquared() }

func (p Point3) Lerp(o Point3, t float64) Point3 {
	return Point3{
		p.X + (o.X-p.X)*t,
		p.Y + (o.Y-p.Y)*t,
		p.Z + (o.Z-p.Z)*t,
	}
}

func (p Point3) Equals(o Point3) bool {
	const tol = 1e-9
	return math.Abs(p.X-o.X) < tol && math.Abs(p.Y-o.Y) < tol && math.Abs(p.Z-o.Z) < tol
}

// --- Normal3 arithmetic ---

func (n Normal3) Add(o Normal3) Normal3      { return Normal3{n.X + o.X, n.Y + o.Y, n.Z + o.Z} }
func (n Normal3) Multiply(s float64) Normal3 { return Normal3{n.X * s, n.Y * s, n.Z * s} }
func (n Normal3) Negate() Normal3            { return Normal3{-n.X, -n.Y, -n.Z} }
func (n Normal3) Length() float64            { return math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z) }

func (n Normal3) Normalize() Normal3 {
	l := n.Length()
	if l == 0 {
		return Normal3{}
	}
	return Normal3{n.X / l, n.Y / l, n.Z / l}
}

func (n Normal3) Dot(v Vector3) float64 { return n.X*v.X + n.Y*v.Y + n.Z*v.Z }

func (n Normal3) Abs() Normal3 {
	return Normal3{math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)}
}

// FaceWith flips the normal, if necessary, so it lies in the same
// hemisphere as v.
func (n Normal3) FaceWith(v Vector3) Normal3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

// Clamp returns x clamped to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// CoordinateSystem builds an orthonormal basis (v2, v3) given a unit
// vector v1, using Duff et al.'s branchless construction.
func CoordinateSystem(v1 Vector3) (v2, v3 Vector3) {
	sign := math.Copysign(1.0, v1.Z)
	a := -1.0 / (sign + v1.Z)
	b := v1.X * v1.Y * a
	v2 = Vector3{1.0 + sign*v1.X*v1.X*a, sign * b, -sign * v1.X}
	v3 = Vector3{b, sign + v1.Y*v1.Y*a, -v1.Y}
	return
}
