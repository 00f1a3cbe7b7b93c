package bsdf

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// Fresnel evaluates the fraction of light reflected at an interface,
// given the cosine of the incident angle (signed: negative means the ray
// approaches from inside the surface).
type Fresnel interface {
	Evaluate(cosThetaI float64) Spectrum
}

// FresnelDielectric implements the real-IOR dielectric Fresnel formula,
// swapping the two IORs when the ray is leaving rather than entering.
type FresnelDielectric struct {
	EtaI, EtaT float64
}

func (f FresnelDielectric) Evaluate(cosThetaI float64) Spectrum {
	v := dielectricReflectance(cosThetaI, f.EtaI, f.EtaT)
	return core.NewSpectrumGray(v)
}

func dielectricReflectance(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = core.Clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := ((etaT * cosThetaI) - (etaI * cosThetaT)) / ((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) / ((etaI * cosThetaI) + (etaT * cosThetaT))
	return (rParl*rParl + rPerp*rPerp) / 2
}

// FresnelConductor implements the full complex-IOR conductor Fresnel
// formula, per RGB channel.
type FresnelConductor struct {
	EtaI, EtaT, K Spectrum
}

func (f FresnelConductor) Evaluate(cosThetaI float64) Spectrum {
	cosThetaI = core.Clamp(math.Abs(cosThetaI), -1, 1)
	return core.NewSpectrum(
		conductorReflectance(cosThetaI, f.EtaI.R, f.EtaT.R, f.K.R),
		conductorReflectance(cosThetaI, f.EtaI.G, f.EtaT.G, f.K.G),
		conductorReflectance(cosThetaI, f.EtaI.B, f.EtaT.B, f.K.B),
	)
}

func conductorReflectance(cosThetaI, etaI, etaT, k float64) float64 {
	eta := etaT / etaI
	etaK := k / etaI

	cosThetaI2 := cosThetaI * cosThetaI
	sinThetaI2 := 1 - cosThetaI2
	eta2 := eta * eta
	etaK2 := etaK * etaK

	t0 := eta2 - etaK2 - sinThetaI2
	a2PlusB2 := math.Sqrt(math.Max(0, t0*t0+4*eta2*etaK2))
	t1 := a2PlusB2 + cosThetaI2
	a := math.Sqrt(math.Max(0, 0.5*(a2PlusB2+t0)))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cosThetaI2*a2PlusB2 + sinThetaI2*sinThetaI2
	t4 := t2 * sinThetaI2
	rp := rs * (t3 - t4) / (t3 + t4)

	return 0.5 * (rp + rs)
}

// FresnelNoOp always reflects everything, used by the Mirror material per
// spec.md's "no-op Fresnel" recipe.
type FresnelNoOp struct{}

func (FresnelNoOp) Evaluate(float64) Spectrum { return core.SpectrumWhite }
