package bsdf

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// Distribution is a microfacet normal distribution function: area
// distribution D, the masked-facet auxiliary function Lambda used to
// build Smith shadowing-masking, and a visible-normal sample routine.
type Distribution interface {
	D(wh core.Vector3) float64
	Lambda(w core.Vector3) float64
	Sample(wo core.Vector3, u1, u2 float64) core.Vector3
}

// G is the height-correlated Smith shadowing-masking term shared by every
// Distribution implementation: G = 1 / (1 + Lambda(wo) + Lambda(wi)).
func G(d Distribution, wo, wi core.Vector3) float64 {
	return 1.0 / (1.0 + d.Lambda(wo) + d.Lambda(wi))
}

// G1 is the single-direction masking term 1 / (1 + Lambda(w)).
func G1(d Distribution, w core.Vector3) float64 {
	return 1.0 / (1.0 + d.Lambda(w))
}

// roughnessToAlpha maps a perceptually-linear [0,1] roughness control to
// the distribution's alpha parameter, matching the conventional
// TrowbridgeReitz::RoughnessToAlpha remap.
func roughnessToAlpha(roughness float64) float64 {
	roughness = math.Max(roughness, 1e-3)
	x := math.Log(roughness)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

// TrowbridgeReitz is the GGX microfacet distribution.
type TrowbridgeReitz struct {
	AlphaX, AlphaY float64
}

// NewTrowbridgeReitzFromRoughness builds an isotropic/anisotropic GGX
// distribution, remapping perceptual roughness to alpha when remap is set.
func NewTrowbridgeReitzFromRoughness(roughnessX, roughnessY float64, remap bool) TrowbridgeReitz {
	if remap {
		return TrowbridgeReitz{AlphaX: roughnessToAlpha(roughnessX), AlphaY: roughnessToAlpha(roughnessY)}
	}
	return TrowbridgeReitz{AlphaX: roughnessX, AlphaY: roughnessY}
}

func (d TrowbridgeReitz) D(wh core.Vector3) float64 {
	tan2Theta := Sin2Theta(wh) / Cos2Theta(wh)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos4Theta := Cos2Theta(wh) * Cos2Theta(wh)
	e := (Cos2Phi(wh)/(d.AlphaX*d.AlphaX) + Sin2Phi(wh)/(d.AlphaY*d.AlphaY)) * tan2Theta
	return 1.0 / (math.Pi * d.AlphaX * d.AlphaY * cos4Theta * (1 + e) * (1 + e))
}

func (d TrowbridgeReitz) Lambda(w core.Vector3) float64 {
	absTanTheta := math.Abs(TanTheta(w))
	if math.IsInf(absTanTheta, 1) {
		return 0
	}
	alpha := math.Sqrt(Cos2Phi(w)*d.AlphaX*d.AlphaX + Sin2Phi(w)*d.AlphaY*d.AlphaY)
	alpha2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+alpha2Tan2Theta)) / 2
}

// Sample draws a half-vector by sampling the (unvisible-normal) GGX
// distribution in polar form; a full visible-normal importance sampler
// is a further refinement not required by the base lobes here.
func (d TrowbridgeReitz) Sample(wo core.Vector3, u1, u2 float64) core.Vector3 {
	phi := 2 * math.Pi * u1
	var alpha float64
	if d.AlphaX == d.AlphaY {
		alpha = d.AlphaX
	} else {
		alpha = math.Sqrt(1.0 / (math.Cos(phi)*math.Cos(phi)/(d.AlphaX*d.AlphaX) + math.Sin(phi)*math.Sin(phi)/(d.AlphaY*d.AlphaY)))
	}
	tanTheta2 := alpha * alpha * u2 / (1 - u2)
	cosTheta := 1.0 / math.Sqrt(1+tanTheta2)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	wh := core.NewVector3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	if !SameHemisphere(wo, wh) {
		wh = wh.Negate()
	}
	return wh
}

// Beckmann is the classic Gaussian-slope microfacet distribution.
type Beckmann struct {
	AlphaX, AlphaY float64
}

func NewBeckmannFromRoughness(roughnessX, roughnessY float64, remap bool) Beckmann {
	if remap {
		return Beckmann{AlphaX: roughnessToAlpha(roughnessX), AlphaY: roughnessToAlpha(roughnessY)}
	}
	return Beckmann{AlphaX: roughnessX, AlphaY: roughnessY}
}

func (d Beckmann) D(wh core.Vector3) float64 {
	tan2Theta := Sin2Theta(wh) / Cos2Theta(wh)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos4Theta := Cos2Theta(wh) * Cos2Theta(wh)
	e := tan2Theta * (Cos2Phi(wh)/(d.AlphaX*d.AlphaX) + Sin2Phi(wh)/(d.AlphaY*d.AlphaY))
	return math.Exp(-e) / (math.Pi * d.AlphaX * d.AlphaY * cos4Theta)
}

func (d Beckmann) Lambda(w core.Vector3) float64 {
	absTanTheta := math.Abs(TanTheta(w))
	if math.IsInf(absTanTheta, 1) {
		return 0
	}
	alpha := math.Sqrt(Cos2Phi(w)*d.AlphaX*d.AlphaX + Sin2Phi(w)*d.AlphaY*d.AlphaY)
	a := 1.0 / (alpha * absTanTheta)
	if a >= 1.6 {
		return 0
	}
	return (1 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
}

func (d Beckmann) Sample(wo core.Vector3, u1, u2 float64) core.Vector3 {
	var alpha float64
	if d.AlphaX == d.AlphaY {
		alpha = d.AlphaX
	} else {
		alpha = math.Sqrt(d.AlphaX * d.AlphaY)
	}
	logSample := math.Log(1 - u1)
	if math.IsInf(logSample, -1) {
		logSample = 0
	}
	tan2Theta := -alpha * alpha * logSample
	phi := 2 * math.Pi * u2
	cosTheta := 1.0 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	wh := core.NewVector3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	if !SameHemisphere(wo, wh) {
		wh = wh.Negate()
	}
	return wh
}
