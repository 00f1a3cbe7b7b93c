package bsdf

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// LambertianReflection is a perfectly diffuse lobe: value R/pi over the
// whole hemisphere, with both hemispherical reflectances equal to R.
type LambertianReflection struct {
	R Spectrum
}

func (l *LambertianReflection) Type() Type { return Reflection | Diffuse }

func (l *LambertianReflection) Evaluate(wo, wi core.Vector3) Spectrum {
	return l.R.Scale(1 / math.Pi)
}

func (l *LambertianReflection) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	wi, pdf := defaultSample(wo, u1, u2)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Value: l.Evaluate(wo, wi), Wi: wi, PDF: pdf, Type: l.Type(), Valid: true}, true
}

func (l *LambertianReflection) PDF(wo, wi core.Vector3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}

// OrenNayar is the rough-diffuse lobe parameterized by a surface
// roughness angle (degrees of microfacet slope standard deviation).
type OrenNayar struct {
	R    Spectrum
	A, B float64
}

// NewOrenNayar precomputes the A/B coefficients from a roughness angle in
// degrees, per the Oren-Nayar approximation used here.
func NewOrenNayar(r Spectrum, roughnessDegrees float64) *OrenNayar {
	sigma := roughnessDegrees * math.Pi / 180
	sigma2 := sigma * sigma
	a := 1 - sigma2/(2*(sigma2+0.33))
	b := 0.45 * sigma2 / (sigma2 + 0.09)
	return &OrenNayar{R: r, A: a, B: b}
}

func (o *OrenNayar) Type() Type { return Reflection | Diffuse }

func (o *OrenNayar) Evaluate(wo, wi core.Vector3) Spectrum {
	sinThetaI := SinTheta(wi)
	sinThetaO := SinTheta(wo)

	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		sinPhiI, cosPhiI := SinPhi(wi), CosPhi(wi)
		sinPhiO, cosPhiO := SinPhi(wo), CosPhi(wo)
		dCos := cosPhiI*cosPhiO + sinPhiI*sinPhiO
		maxCos = math.Max(0, dCos)
	}

	var sinAlpha, tanBeta float64
	if AbsCosTheta(wi) > AbsCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / AbsCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / AbsCosTheta(wo)
	}

	return o.R.Scale((o.A + o.B*maxCos*sinAlpha*tanBeta) / math.Pi)
}

func (o *OrenNayar) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	wi, pdf := defaultSample(wo, u1, u2)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Value: o.Evaluate(wo, wi), Wi: wi, PDF: pdf, Type: o.Type(), Valid: true}, true
}

func (o *OrenNayar) PDF(wo, wi core.Vector3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}
