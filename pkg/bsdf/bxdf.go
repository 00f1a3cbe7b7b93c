// Package bsdf implements the surface-scattering layer: a tagged-variant
// BxDF taxonomy (Lambertian, Oren-Nayar, specular reflection/transmission,
// Fresnel-specular, microfacet reflection/transmission), Fresnel
// dielectric and conductor terms, and the BSDF container that composes
// up to eight lobes in a local shading frame.
package bsdf

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// Type is a bitmask classifying a BxDF's scattering category.
type Type int

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	AllReflection   = Reflection | Diffuse | Glossy | Specular
	AllTransmission = Transmission | Diffuse | Glossy | Specular
	All             = AllReflection | AllTransmission
)

func (t Type) Matches(mask Type) bool       { return t&mask != 0 }
func (t Type) IsSpecular() bool             { return t&Specular != 0 }
func (t Type) IsReflective() bool           { return t&Reflection != 0 }
func (t Type) IsTransmissive() bool         { return t&Transmission != 0 }

// Sample is the result of sampling a single BxDF lobe in local shading
// space (ωi and the returned pdf/value are all local-frame quantities).
type Sample struct {
	Value Spectrum
	Wi    core.Vector3
	PDF   float64
	Type  Type
	Valid bool
}

// BxDF is a single scattering lobe, operating entirely in local shading
// coordinates where the shading normal is (0,0,1).
type BxDF interface {
	Type() Type
	// Evaluate returns the lobe's value for the given local-space
	// directions. Fully specular lobes return black here: only SampleF
	// produces their single delta direction.
	Evaluate(wo, wi core.Vector3) Spectrum
	// SampleF samples an incoming direction given outgoing wo and two
	// uniform random numbers; ok is false if the sample is degenerate.
	SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool)
	// PDF returns the probability density of SampleF having produced wi
	// given wo; zero for specular lobes.
	PDF(wo, wi core.Vector3) float64
}

// Spectrum aliases core.Spectrum so this package's exported surface reads
// naturally (bsdf.Spectrum) without a second RGB type.
type Spectrum = core.Spectrum

// --- shading-frame trigonometric helpers (operate on local-space vectors) ---

func CosTheta(w core.Vector3) float64    { return w.Z }
func AbsCosTheta(w core.Vector3) float64 { return math.Abs(w.Z) }
func Cos2Theta(w core.Vector3) float64   { return w.Z * w.Z }
func Sin2Theta(w core.Vector3) float64   { return math.Max(0, 1-Cos2Theta(w)) }
func SinTheta(w core.Vector3) float64    { return math.Sqrt(Sin2Theta(w)) }
func TanTheta(w core.Vector3) float64    { return SinTheta(w) / CosTheta(w) }

func CosPhi(w core.Vector3) float64 {
	s := SinTheta(w)
	if s == 0 {
		return 1
	}
	return core.Clamp(w.X/s, -1, 1)
}

func SinPhi(w core.Vector3) float64 {
	s := SinTheta(w)
	if s == 0 {
		return 0
	}
	return core.Clamp(w.Y/s, -1, 1)
}

func Cos2Phi(w core.Vector3) float64 { c := CosPhi(w); return c * c }
func Sin2Phi(w core.Vector3) float64 { s := SinPhi(w); return s * s }

func SameHemisphere(a, b core.Vector3) bool { return a.Z*b.Z > 0 }

// reflect returns the mirror-reflection of wo about n in local space,
// where n is usually (0,0,1).
func reflect(wo core.Vector3, n core.Vector3) core.Vector3 {
	return n.Multiply(2 * wo.Dot(n)).Subtract(wo)
}

// refract bends wo across the interface with normal n (on the wo side)
// and relative IOR eta = eta_incident/eta_transmitted; ok is false on
// total internal reflection.
func refract(wo core.Vector3, n core.Vector3, eta float64) (core.Vector3, bool) {
	cosThetaI := n.Dot(wo)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vector3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wo.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wt, true
}

// defaultSample is the cosine-weighted placeholder sampler shared by
// lobes with no specialized importance sampling (used here only by
// lobes that explicitly delegate to it).
func defaultSample(wo core.Vector3, u1, u2 float64) (wi core.Vector3, pdf float64) {
	z := math.Copysign(1, -wo.Z)
	wi = core.NewVector3(u1, u2, z).Normalize()
	if SameHemisphere(wo, wi) {
		pdf = AbsCosTheta(wi) / math.Pi
	}
	return wi, pdf
}
