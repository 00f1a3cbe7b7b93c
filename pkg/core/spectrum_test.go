package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpectrumArithmetic(t *testing.T) {
	a := NewSpectrum(1, 2, 3)
	b := NewSpectrum(0.5, 0.5, 0.5)

	assert.Equal(t, NewSpectrum(1.5, 2.5, 3.5), a.Add(b))
	assert.Equal(t, NewSpectrum(0.5, 1, 1.5), a.Multiply(b))
	assert.Equal(t, NewSpectrum(2, 4, 6), a.Scale(2))
}

func TestSpectrumDivideByZeroChannelYieldsZero(t *testing.T) {
	a := NewSpectrum(1, 2, 3)
	b := NewSpectrum(0, 2, 0)

	got := a.Divide(b)
	assert.Equal(t, 0.0, got.R)
	assert.Equal(t, 1.0, got.G)
	assert.Equal(t, 0.0, got.B)
}

func TestSpectrumIsBlack(t *testing.T) {
	assert.True(t, SpectrumBlack.IsBlack())
	assert.False(t, SpectrumWhite.IsBlack())
}

func TestSpectrumIsValidRejectsNaNAndInf(t *testing.T) {
	assert.True(t, NewSpectrum(1, 1, 1).IsValid())
	assert.False(t, NewSpectrum(math.NaN(), 0, 0).IsValid())
	assert.False(t, NewSpectrum(math.Inf(1), 0, 0).IsValid())
}

func TestSpectrumClamp(t *testing.T) {
	s := NewSpectrum(-1, 0.5, 2)
	c := s.Clamp(0, 1)
	assert.Equal(t, NewSpectrum(0, 0.5, 1), c)
}

func TestSpectrumGammaCorrectIdentityAtOne(t *testing.T) {
	s := NewSpectrum(0.5, 0.25, 1)
	assert.Equal(t, s, s.GammaCorrect(1))
}

func TestSpectrumLerpEndpoints(t *testing.T) {
	a := NewSpectrum(0, 0, 0)
	b := NewSpectrum(1, 1, 1)

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestSpectrumLuminanceWeightsGreenMost(t *testing.T) {
	r := NewSpectrum(1, 0, 0).Luminance()
	g := NewSpectrum(0, 1, 0).Luminance()
	b := NewSpectrum(0, 0, 1).Luminance()
	assert.Greater(t, g, r)
	assert.Greater(t, g, b)
}
