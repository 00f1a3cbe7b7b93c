package bsdf

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// MicrofacetReflection is a rough-specular reflective lobe built from a
// microfacet Distribution and a Fresnel term.
type MicrofacetReflection struct {
	R           Spectrum
	Distribution Distribution
	Fresnel     Fresnel
}

func (m *MicrofacetReflection) Type() Type { return Reflection | Glossy }

func (m *MicrofacetReflection) Evaluate(wo, wi core.Vector3) Spectrum {
	cosThetaO := AbsCosTheta(wo)
	cosThetaI := AbsCosTheta(wi)
	if cosThetaI == 0 || cosThetaO == 0 {
		return core.SpectrumBlack
	}
	wh := wi.Add(wo)
	if wh.IsZero() {
		return core.SpectrumBlack
	}
	wh = wh.Normalize()

	f := m.Fresnel.Evaluate(wi.Dot(wh))
	d := m.Distribution.D(wh)
	g := G(m.Distribution, wo, wi)
	return m.R.Multiply(f).Scale(d * g / (4 * cosThetaI * cosThetaO))
}

func (m *MicrofacetReflection) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}
	wh := m.Distribution.Sample(wo, u1, u2)
	wi := reflect(wo, wh)
	if !SameHemisphere(wo, wi) {
		return Sample{}, false
	}
	pdf := m.PDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Value: m.Evaluate(wo, wi), Wi: wi, PDF: pdf, Type: m.Type(), Valid: true}, true
}

func (m *MicrofacetReflection) PDF(wo, wi core.Vector3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.IsZero() {
		return 0
	}
	wh = wh.Normalize()
	return m.Distribution.D(wh) * AbsCosTheta(wh) / (4 * wo.Dot(wh))
}

// MicrofacetTransmission is a rough-specular transmissive lobe for a
// dielectric interface, built from a microfacet Distribution.
type MicrofacetTransmission struct {
	T            Spectrum
	Distribution Distribution
	EtaA, EtaB   float64
	Fresnel      FresnelDielectric
	TransportRadiance bool
}

func NewMicrofacetTransmission(t Spectrum, d Distribution, etaA, etaB float64, transportRadiance bool) *MicrofacetTransmission {
	return &MicrofacetTransmission{
		T: t, Distribution: d, EtaA: etaA, EtaB: etaB,
		Fresnel:           FresnelDielectric{EtaI: etaA, EtaT: etaB},
		TransportRadiance: transportRadiance,
	}
}

func (m *MicrofacetTransmission) Type() Type { return Transmission | Glossy }

func (m *MicrofacetTransmission) Evaluate(wo, wi core.Vector3) Spectrum {
	if SameHemisphere(wo, wi) {
		return core.SpectrumBlack
	}
	cosThetaO := CosTheta(wo)
	cosThetaI := CosTheta(wi)
	if cosThetaI == 0 || cosThetaO == 0 {
		return core.SpectrumBlack
	}

	eta := m.EtaB / m.EtaA
	if cosThetaO > 0 {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return core.SpectrumBlack
	}

	f := m.Fresnel.Evaluate(wo.Dot(wh))
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	factor := 1.0
	if m.TransportRadiance {
		factor = 1 / eta
	}

	d := m.Distribution.D(wh)
	g := G(m.Distribution, wo, wi)
	numerator := d * g * eta * eta * math.Abs(wi.Dot(wh)) * math.Abs(wo.Dot(wh)) * factor * factor
	denom := cosThetaI * cosThetaO * sqrtDenom * sqrtDenom

	oneMinusF := core.SpectrumWhite.Subtract(f)
	return m.T.Multiply(oneMinusF).Scale(math.Abs(numerator / denom))
}

func (m *MicrofacetTransmission) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}
	wh := m.Distribution.Sample(wo, u1, u2)
	if wo.Dot(wh) < 0 {
		return Sample{}, false
	}

	eta := m.EtaA / m.EtaB
	if CosTheta(wo) <= 0 {
		eta = m.EtaB / m.EtaA
	}
	wi, ok := refract(wo, wh, eta)
	if !ok {
		return Sample{}, false
	}
	pdf := m.PDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Value: m.Evaluate(wo, wi), Wi: wi, PDF: pdf, Type: m.Type(), Valid: true}, true
}

func (m *MicrofacetTransmission) PDF(wo, wi core.Vector3) float64 {
	if SameHemisphere(wo, wi) {
		return 0
	}
	eta := m.EtaB / m.EtaA
	if CosTheta(wo) > 0 {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return 0
	}
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	dwhDwi := math.Abs((eta * eta * wi.Dot(wh)) / (sqrtDenom * sqrtDenom))
	return m.Distribution.D(wh) * AbsCosTheta(wh) * dwhDwi
}
