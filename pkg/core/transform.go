package core

import "math"

// Matrix4x4 is a row-major 4x4 matrix.
type Matrix4x4 struct {
	M [4][4]float64
}

// Identity4x4 returns the 4x4 identity matrix.
func Identity4x4() Matrix4x4 {
	var m Matrix4x4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// Multiply returns m * o.
func (m Matrix4x4) Multiply(o Matrix4x4) Matrix4x4 {
	var r Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.M[i][k] * o.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Transpose returns the matrix transpose.
func (m Matrix4x4) Transpose() Matrix4x4 {
	var r Matrix4x4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.M[i][j] = m.M[j][i]
		}
	}
	return r
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination with
// partial pivoting. Panics if the matrix is numerically singular: a
// non-invertible matrix reaching this point is a structural programmer
// error (e.g. a degenerate scale), not a recoverable numerical condition.
func (m Matrix4x4) Inverse() Matrix4x4 {
	indxc := [4]int{}
	indxr := [4]int{}
	ipiv := [4]int{}
	minv := m.M

	for i := 0; i < 4; i++ {
		irow, icol := 0, 0
		big := 0.0
		for j := 0; j < 4; j++ {
			if ipiv[j] != 1 {
				for k := 0; k < 4; k++ {
					if ipiv[k] == 0 {
						if math.Abs(minv[j][k]) >= big {
							big = math.Abs(minv[j][k])
							irow, icol = j, k
						}
					}
				}
			}
		}
		ipiv[icol]++

		if irow != icol {
			for k := 0; k < 4; k++ {
				minv[irow][k], minv[icol][k] = minv[icol][k], minv[irow][k]
			}
		}
		indxr[i] = irow
		indxc[i] = icol
		if minv[icol][icol] == 0 {
			panic("core: Matrix4x4.Inverse: singular matrix")
		}

		pivinv := 1.0 / minv[icol][icol]
		minv[icol][icol] = 1.0
		for k := 0; k < 4; k++ {
			minv[icol][k] *= pivinv
		}

		for j := 0; j < 4; j++ {
			if j != icol {
				save := minv[j][icol]
				minv[j][icol] = 0
				for k := 0; k < 4; k++ {
					minv[j][k] -= minv[icol][k] * save
				}
			}
		}
	}

	for j := 3; j >= 0; j-- {
		if indxr[j] != indxc[j] {
			for k := 0; k < 4; k++ {
				minv[k][indxr[j]], minv[k][indxc[j]] = minv[k][indxc[j]], minv[k][indxr[j]]
			}
		}
	}
	return Matrix4x4{M: minv}
}

// Transform pairs a 4x4 affine matrix with its precomputed inverse. The
// invariant matrix * inverse = I is established at construction and
// preserved by composition (forward matrices multiply in order; inverses
// compose in the reverse order).
type Transform struct {
	M, MInv Matrix4x4
}

// NewTransform builds a Transform from a matrix, computing its inverse.
func NewTransform(m Matrix4x4) Transform {
	return Transform{M: m, MInv: m.Inverse()}
}

// NewTransformWithInverse builds a Transform from a matrix and a
// caller-supplied inverse, skipping the (expensive) inverse computation
// when the caller already knows it (e.g. Translate, Scale).
func NewTransformWithInverse(m, mInv Matrix4x4) Transform {
	return Transform{M: m, MInv: mInv}
}

func IdentityTransform() Transform { return Transform{M: Identity4x4(), MInv: Identity4x4()} }

// Inverse returns the inverse transform: swapping M and MInv.
func (t Transform) Inverse() Transform {
	return Transform{M: t.MInv, MInv: t.M}
}

// Compose returns a transform equal to applying o first, then t
// (t.M * o.M in matrix terms, matching the convention that Apply
// multiplies the point as a column vector on the right).
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		M:    t.M.Multiply(o.M),
		MInv: o.MInv.Multiply(t.MInv),
	}
}

func Translate(delta Vector3) Transform {
	m := Identity4x4()
	m.M[0][3], m.M[1][3], m.M[2][3] = delta.X, delta.Y, delta.Z
	mInv := Identity4x4()
	mInv.M[0][3], mInv.M[1][3], mInv.M[2][3] = -delta.X, -delta.Y, -delta.Z
	return NewTransformWithInverse(m, mInv)
}

func Scale(x, y, z float64) Transform {
	m := Identity4x4()
	m.M[0][0], m.M[1][1], m.M[2][2] = x, y, z
	mInv := Identity4x4()
	mInv.M[0][0], mInv.M[1][1], mInv.M[2][2] = 1/x, 1/y, 1/z
	return NewTransformWithInverse(m, mInv)
}

func RotateX(deg float64) Transform {
	s, c := math.Sincos(radians(deg))
	m := Identity4x4()
	m.M[1][1], m.M[1][2] = c, -s
	m.M[2][1], m.M[2][2] = s, c
	return NewTransformWithInverse(m, m.Transpose())
}

func RotateY(deg float64) Transform {
	s, c := math.Sincos(radians(deg))
	m := Identity4x4()
	m.M[0][0], m.M[0][2] = c, s
	m.M[2][0], m.M[2][2] = -s, c
	return NewTransformWithInverse(m, m.Transpose())
}

func RotateZ(deg float64) Transform {
	s, c := math.Sincos(radians(deg))
	m := Identity4x4()
	m.M[0][0], m.M[0][1] = c, -s
	m.M[1][0], m.M[1][1] = s, c
	return NewTransformWithInverse(m, m.Transpose())
}

// Rotate builds a rotation by deg degrees around an arbitrary axis, via
// Rodrigues' formula laid out as a matrix.
func Rotate(deg float64, axis Vector3) Transform {
	a := axis.Normalize()
	s, c := math.Sincos(radians(deg))
	m := Identity4x4()

	m.M[0][0] = a.X*a.X + (1-a.X*a.X)*c
	m.M[0][1] = a.X*a.Y*(1-c) - a.Z*s
	m.M[0][2] = a.X*a.Z*(1-c) + a.Y*s

	m.M[1][0] = a.X*a.Y*(1-c) + a.Z*s
	m.M[1][1] = a.Y*a.Y + (1-a.Y*a.Y)*c
	m.M[1][2] = a.Y*a.Z*(1-c) - a.X*s

	m.M[2][0] = a.X*a.Z*(1-c) - a.Y*s
	m.M[2][1] = a.Y*a.Z*(1-c) + a.X*s
	m.M[2][2] = a.Z*a.Z + (1-a.Z*a.Z)*c

	return NewTransformWithInverse(m, m.Transpose())
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// LookAt builds the camera-to-world transform for a camera at pos looking
// toward target with the given up vector.
func LookAt(pos, target Point3, up Vector3) Transform {
	dir := target.Subtract(pos).Normalize()
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)

	m := Identity4x4()
	m.M[0][0], m.M[1][0], m.M[2][0] = right.X, right.Y, right.Z
	m.M[0][1], m.M[1][1], m.M[2][1] = newUp.X, newUp.Y, newUp.Z
	m.M[0][2], m.M[1][2], m.M[2][2] = dir.X, dir.Y, dir.Z
	m.M[0][3], m.M[1][3], m.M[2][3] = pos.X, pos.Y, pos.Z

	return NewTransform(m)
}

// Perspective builds a camera-to-screen perspective projection with the
// given vertical field of view (degrees) and near/far clip planes.
func Perspective(fov, near, far float64) Transform {
	var persp Matrix4x4
	persp.M[0][0] = 1
	persp.M[1][1] = 1
	persp.M[2][2] = far / (far - near)
	persp.M[2][3] = -far * near / (far - near)
	persp.M[3][2] = 1

	invTanAng := 1.0 / math.Tan(radians(fov)/2.0)
	return NewTransform(persp).Compose(Scale(invTanAng, invTanAng, 1))
}

// --- Applying transforms ---

// Point transforms p with no incoming error (exact input).
func (t Transform) Point(p Point3) Point3 {
	m := t.M.M
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w == 1 {
		return Point3{x, y, z}
	}
	return Point3{x / w, y / w, z / w}
}

// Vector transforms a direction (no translation component).
func (t Transform) Vector(v Vector3) Vector3 {
	m := t.M.M
	return Vector3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Normal transforms a surface normal by the inverse-transpose of the
// forward matrix, so the result stays perpendicular to the transformed
// surface even under non-uniform scale.
func (t Transform) Normal(n Normal3) Normal3 {
	mInv := t.MInv.M
	return Normal3{
		mInv[0][0]*n.X + mInv[1][0]*n.Y + mInv[2][0]*n.Z,
		mInv[0][1]*n.X + mInv[1][1]*n.Y + mInv[2][1]*n.Z,
		mInv[0][2]*n.X + mInv[1][2]*n.Y + mInv[2][2]*n.Z,
	}
}

// Ray transforms a ray's origin and direction; TMax passes through.
func (t Transform) Ray(r Ray) Ray {
	o, _ := t.PointWithError(r.Origin, Vector3{})
	d := t.Vector(r.Direction)
	return Ray{Origin: o, Direction: d, TMax: r.TMax}
}

// Bounds transforms an axis-aligned box by transforming and re-bounding
// all eight corners, since an affine transform does not in general map
// an axis-aligned box to another axis-aligned box.
func (t Transform) Bounds(b Bounds3) Bounds3 {
	ret := NewBounds3(t.Point(b.Min), t.Point(b.Min))
	corners := [8]Point3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
	for _, c := range corners {
		ret = ret.UnionPoint(t.Point(c))
	}
	return ret
}

// --- Error-tracked transforms (spec.md §4.1) ---

// PointWithError transforms p, returning the transformed point and a
// conservative per-axis absolute error bound. pErr is the error already
// associated with p (zero for an exact input point).
//
// With no incoming error, the error of each output coordinate is
// gamma(3) * (|m_i0*x| + |m_i1*y| + |m_i2*z| + |m_i3|). With incoming
// error pErr, it is (gamma(3)+1)*|M|*pErr + gamma(3)*(|M|*|p|+|t|).
func (t Transform) PointWithError(p Point3, pErr Vector3) (Point3, Vector3) {
	m := t.M.M
	x, y, z := p.X, p.Y, p.Z

	xAbsSum := math.Abs(m[0][0]*x) + math.Abs(m[0][1]*y) + math.Abs(m[0][2]*z) + math.Abs(m[0][3])
	yAbsSum := math.Abs(m[1][0]*x) + math.Abs(m[1][1]*y) + math.Abs(m[1][2]*z) + math.Abs(m[1][3])
	zAbsSum := math.Abs(m[2][0]*x) + math.Abs(m[2][1]*y) + math.Abs(m[2][2]*z) + math.Abs(m[2][3])

	g3 := gamma(3)
	var outErr Vector3
	if pErr.IsZero() {
		outErr = Vector3{g3 * xAbsSum, g3 * yAbsSum, g3 * zAbsSum}
	} else {
		mAbsDotErrX := math.Abs(m[0][0])*pErr.X + math.Abs(m[0][1])*pErr.Y + math.Abs(m[0][2])*pErr.Z
		mAbsDotErrY := math.Abs(m[1][0])*pErr.X + math.Abs(m[1][1])*pErr.Y + math.Abs(m[1][2])*pErr.Z
		mAbsDotErrZ := math.Abs(m[2][0])*pErr.X + math.Abs(m[2][1])*pErr.Y + math.Abs(m[2][2])*pErr.Z
		outErr = Vector3{
			(g3+1)*mAbsDotErrX + g3*xAbsSum,
			(g3+1)*mAbsDotErrY + g3*yAbsSum,
			(g3+1)*mAbsDotErrZ + g3*zAbsSum,
		}
	}

	return t.Point(p), outErr
}

// RayWithError transforms a ray, tracking the conservative error on its
// origin. The origin is nudged forward along the direction by
// (direction . |originErr|) / |direction|^2 so the returned origin
// conservatively lies outside the bounding error box of the surface it
// left, preventing self-intersection on the next traversal.
func (t Transform) RayWithError(r Ray, oErrIn Vector3) (Ray, Vector3) {
	o, oErr := t.PointWithError(r.Origin, oErrIn)
	d := t.Vector(r.Direction)

	lengthSquared := d.LengthSquared()
	if lengthSquared > 0 {
		dt := d.Abs().Dot(oErr) / lengthSquared
		o = o.Add(d.Multiply(dt))
	}

	return Ray{Origin: o, Direction: d, TMax: r.TMax}, oErr
}
