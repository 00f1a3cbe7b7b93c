package core

import "math"

// machineEpsilon is half the ULP spacing at 1.0 for float64, matching the
// convention used by the gamma(n) error bound below.
const machineEpsilon = 1.1102230246251565e-16 // 2^-53

// gamma computes the standard forward-error bound for a computation
// composed of n rounded floating point operations:
//
//	gamma(n) = (n*eps/2) / (1 - n*eps/2)
func gamma(n int) float64 {
	ne := float64(n) * machineEpsilon
	return ne / (1 - ne)
}

// Gamma exports gamma(n) for callers outside this package that need to
// widen their own error bounds (e.g. shape intersection routines).
func Gamma(n int) float64 { return gamma(n) }

// ErrorFloat carries a conservative interval [Low, High] around a central
// Value. Every arithmetic operation widens the interval outward by at
// least one ULP so that Low <= exact value <= High is preserved no matter
// how rounding actually falls.
type ErrorFloat struct {
	Value, Low, High float64
}

// NewErrorFloat creates an exact ErrorFloat with zero error.
func NewErrorFloat(v float64) ErrorFloat {
	return ErrorFloat{Value: v, Low: v, High: v}
}

// NewErrorFloatBounds creates an ErrorFloat with an explicit error
// magnitude around v.
func NewErrorFloatBounds(v, err float64) ErrorFloat {
	if err == 0 {
		return ErrorFloat{Value: v, Low: v, High: v}
	}
	return ErrorFloat{
		Value: v,
		Low:   nextFloatDown(v - err),
		High:  nextFloatUp(v + err),
	}
}

func nextFloatUp(v float64) float64 {
	if math.IsInf(v, 1) {
		return v
	}
	if v == 0 {
		v = 0 // normalize -0 to +0
	}
	bits := math.Float64bits(v)
	if v >= 0 {
		bits++
	} else {
		bits--
	}
	return math.Float64frombits(bits)
}

func nextFloatDown(v float64) float64 {
	if math.IsInf(v, -1) {
		return v
	}
	if v == 0 {
		v = 0
	}
	bits := math.Float64bits(v)
	if v > 0 {
		bits--
	} else {
		bits++
	}
	return math.Float64frombits(bits)
}

func (e ErrorFloat) Error() float64 { return math.Max(e.High-e.Value, e.Value-e.Low) }

func (e ErrorFloat) Add(o ErrorFloat) ErrorFloat {
	return ErrorFloat{
		Value: e.Value + o.Value,
		Low:   nextFloatDown(e.Low + o.Low),
		High:  nextFloatUp(e.High + o.High),
	}
}

func (e ErrorFloat) Subtract(o ErrorFloat) ErrorFloat {
	return ErrorFloat{
		Value: e.Value - o.Value,
		Low:   nextFloatDown(e.Low - o.High),
		High:  nextFloatUp(e.High - o.Low),
	}
}

func (e ErrorFloat) Multiply(o ErrorFloat) ErrorFloat {
	products := [4]float64{
		e.Low * o.Low, e.High * o.Low,
		e.Low * o.High, e.High * o.High,
	}
	lo := math.Min(math.Min(products[0], products[1]), math.Min(products[2], products[3]))
	hi := math.Max(math.Max(products[0], products[1]), math.Max(products[2], products[3]))
	return ErrorFloat{
		Value: e.Value * o.Value,
		Low:   nextFloatDown(lo),
		High:  nextFloatUp(hi),
	}
}

func (e ErrorFloat) MultiplyScalar(s float64) ErrorFloat {
	if s >= 0 {
		return ErrorFloat{e.Value * s, nextFloatDown(e.Low * s), nextFloatUp(e.High * s)}
	}
	return ErrorFloat{e.Value * s, nextFloatDown(e.High * s), nextFloatUp(e.Low * s)}
}

// Divide divides the interval by another interval. If the divisor
// straddles zero the result is the unbounded interval [-Inf, +Inf],
// since no finite conservative bound exists.
func (e ErrorFloat) Divide(o ErrorFloat) ErrorFloat {
	if o.Low < 0 && o.High > 0 {
		return ErrorFloat{e.Value / o.Value, math.Inf(-1), math.Inf(1)}
	}
	quotients := [4]float64{
		e.Low / o.Low, e.High / o.Low,
		e.Low / o.High, e.High / o.High,
	}
	lo := math.Min(math.Min(quotients[0], quotients[1]), math.Min(quotients[2], quotients[3]))
	hi := math.Max(math.Max(quotients[0], quotients[1]), math.Max(quotients[2], quotients[3]))
	return ErrorFloat{
		Value: e.Value / o.Value,
		Low:   nextFloatDown(lo),
		High:  nextFloatUp(hi),
	}
}

func (e ErrorFloat) Negate() ErrorFloat {
	return ErrorFloat{-e.Value, -e.High, -e.Low}
}

func (e ErrorFloat) Sqrt() ErrorFloat {
	return ErrorFloat{
		Value: math.Sqrt(e.Value),
		Low:   nextFloatDown(math.Sqrt(math.Max(0, e.Low))),
		High:  nextFloatUp(math.Sqrt(e.High)),
	}
}

func (e ErrorFloat) Abs() ErrorFloat {
	if e.Low >= 0 {
		return e
	}
	if e.High <= 0 {
		return e.Negate()
	}
	return ErrorFloat{math.Abs(e.Value), 0, math.Max(-e.Low, e.High)}
}

// QuadraticErrorFloat solves a*t^2 + b*t + c = 0 where the coefficients
// carry their own conservative error intervals, returning the two roots
// ordered t0.Value <= t1.Value, or ok=false if the discriminant is
// negative.
func QuadraticErrorFloat(a, b, c ErrorFloat) (t0, t1 ErrorFloat, ok bool) {
	discrim := b.Value*b.Value - 4*a.Value*c.Value
	if discrim < 0 {
		return ErrorFloat{}, ErrorFloat{}, false
	}
	rootDiscrim := math.Sqrt(discrim)
	floatRootDiscrim := NewErrorFloatBounds(rootDiscrim, machineEpsilon*rootDiscrim)

	var q ErrorFloat
	if b.Value < 0 {
		q = b.MultiplyScalar(-1).Add(floatRootDiscrim).MultiplyScalar(0.5)
	} else {
		q = b.Add(floatRootDiscrim).MultiplyScalar(-0.5)
	}
	t0 = q.Divide(a)
	t1 = c.Divide(q)
	if t0.Value > t1.Value {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
