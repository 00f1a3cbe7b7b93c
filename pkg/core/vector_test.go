package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3DotAndCross(t *testing.T) {
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)

	assert.Equal(t, 0.0, x.Dot(y))
	assert.True(t, x.Cross(y).Equals(NewVector3(0, 0, 1)))
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	n := v.Normalize()

	assert.InDelta(t, 1.0, n.Length(), 1e-9)
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
}

func TestVector3NormalizeZeroIsZero(t *testing.T) {
	assert.True(t, Vector3{}.Normalize().IsZero())
}

func TestVector3MaxDimension(t *testing.T) {
	assert.Equal(t, 0, NewVector3(5, 1, 2).MaxDimension())
	assert.Equal(t, 1, NewVector3(1, 5, 2).MaxDimension())
	assert.Equal(t, 2, NewVector3(1, 2, 5).MaxDimension())
}

func TestVector3Permute(t *testing.T) {
	v := NewVector3(1, 2, 3)
	p := v.Permute(2, 0, 1)
	assert.True(t, p.Equals(NewVector3(3, 1, 2)))
}

func TestCoordinateSystemIsOrthonormal(t *testing.T) {
	v1 := NewVector3(0.267, 0.534, 0.802).Normalize()
	v2, v3 := CoordinateSystem(v1)

	assert.InDelta(t, 0.0, v1.Dot(v2), 1e-9)
	assert.InDelta(t, 0.0, v1.Dot(v3), 1e-9)
	assert.InDelta(t, 0.0, v2.Dot(v3), 1e-9)
	assert.InDelta(t, 1.0, v2.Length(), 1e-9)
	assert.InDelta(t, 1.0, v3.Length(), 1e-9)
}

func TestNormal3FaceWith(t *testing.T) {
	n := NewNormal3(0, 0, 1)
	away := NewVector3(0, 0, -1)

	flipped := n.FaceWith(away)
	assert.InDelta(t, -1.0, flipped.Z, 1e-9)
}

func TestClampBoundsValue(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestPoint3DistanceAndLerp(t *testing.T) {
	a := NewPoint3(0, 0, 0)
	b := NewPoint3(3, 4, 0)

	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
	mid := a.Lerp(b, 0.5)
	assert.True(t, mid.Equals(NewPoint3(1.5, 2, 0)))
}

func TestVector3ToPoint3RoundTrip(t *testing.T) {
	v := NewVector3(1, 2, 3)
	assert.True(t, v.ToPoint3().ToVector3().Equals(v))
}

func TestVector3AbsAndMaxComponent(t *testing.T) {
	v := NewVector3(-3, 2, -5)
	assert.True(t, v.Abs().Equals(NewVector3(3, 2, 5)))
	assert.Equal(t, 5.0, v.Abs().MaxComponent())
}

func TestVector3LengthSquaredMatchesLength(t *testing.T) {
	v := NewVector3(1, 2, 2)
	assert.InDelta(t, math.Pow(v.Length(), 2), v.LengthSquared(), 1e-9)
}
