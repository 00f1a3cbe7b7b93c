package bsdf

import "github.com/quantplane/photon/pkg/core"

// SpecularReflection is a perfect-mirror lobe modulated by a Fresnel term.
type SpecularReflection struct {
	R       Spectrum
	Fresnel Fresnel
}

func (s *SpecularReflection) Type() Type { return Reflection | Specular }

// Evaluate is black for any non-delta pair of directions: a specular
// lobe only has support at a single wi, which SampleF alone can produce.
func (s *SpecularReflection) Evaluate(wo, wi core.Vector3) Spectrum { return core.SpectrumBlack }
func (s *SpecularReflection) PDF(wo, wi core.Vector3) float64       { return 0 }

func (s *SpecularReflection) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	wi := core.NewVector3(-wo.X, -wo.Y, wo.Z)
	f := s.Fresnel.Evaluate(CosTheta(wi))
	value := f.Multiply(s.R).Scale(1 / AbsCosTheta(wi))
	return Sample{Value: value, Wi: wi, PDF: 1, Type: s.Type(), Valid: true}, true
}

// SpecularTransmission is a perfect-refraction lobe for a dielectric
// interface with the given indices of refraction on either side.
type SpecularTransmission struct {
	T          Spectrum
	EtaA, EtaB float64 // EtaA: outside (incident medium); EtaB: inside
	Fresnel    FresnelDielectric
	// Mode distinguishes radiance transport (scales by (etaI/etaT)^2) from
	// importance transport (no scaling), matching the physically based
	// non-symmetry of transmitted radiance under a change of medium.
	TransportRadiance bool
}

func NewSpecularTransmission(t Spectrum, etaA, etaB float64, transportRadiance bool) *SpecularTransmission {
	return &SpecularTransmission{
		T: t, EtaA: etaA, EtaB: etaB,
		Fresnel:           FresnelDielectric{EtaI: etaA, EtaT: etaB},
		TransportRadiance: transportRadiance,
	}
}

func (s *SpecularTransmission) Type() Type { return Transmission | Specular }

func (s *SpecularTransmission) Evaluate(wo, wi core.Vector3) Spectrum { return core.SpectrumBlack }
func (s *SpecularTransmission) PDF(wo, wi core.Vector3) float64       { return 0 }

func (s *SpecularTransmission) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
	}

	faceNormal := core.NewVector3(0, 0, 1)
	if CosTheta(wo) < 0 {
		faceNormal = faceNormal.Negate()
	}
	wi, ok := refract(wo, faceNormal, etaI/etaT)
	if !ok {
		return Sample{}, false
	}

	fr := dielectricReflectance(CosTheta(wi), s.EtaA, s.EtaB)
	ft := s.T.Scale(1 - fr)
	if s.TransportRadiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	value := ft.Scale(1 / AbsCosTheta(wi))
	return Sample{Value: value, Wi: wi, PDF: 1, Type: s.Type(), Valid: true}, true
}

// FresnelSpecular combines a reflective and transmissive delta lobe into
// one, probability-branching between the two by the Fresnel fraction so
// a single BSDF sample covers both without double-counting.
type FresnelSpecular struct {
	R, T       Spectrum
	EtaA, EtaB float64
	TransportRadiance bool
}

func (s *FresnelSpecular) Type() Type { return Reflection | Transmission | Specular }

func (s *FresnelSpecular) Evaluate(wo, wi core.Vector3) Spectrum { return core.SpectrumBlack }
func (s *FresnelSpecular) PDF(wo, wi core.Vector3) float64       { return 0 }

func (s *FresnelSpecular) SampleF(wo core.Vector3, u1, u2 float64) (Sample, bool) {
	fr := dielectricReflectance(CosTheta(wo), s.EtaA, s.EtaB)

	if u1 < fr {
		wi := core.NewVector3(-wo.X, -wo.Y, wo.Z)
		value := s.R.Scale(fr / AbsCosTheta(wi))
		return Sample{Value: value, Wi: wi, PDF: fr, Type: Reflection | Specular, Valid: true}, true
	}

	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
	}
	faceNormal := core.NewVector3(0, 0, 1)
	if CosTheta(wo) < 0 {
		faceNormal = faceNormal.Negate()
	}
	wi, ok := refract(wo, faceNormal, etaI/etaT)
	if !ok {
		return Sample{}, false
	}

	ft := s.T.Scale(1 - fr)
	if s.TransportRadiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	value := ft.Scale(1 / AbsCosTheta(wi))
	return Sample{Value: value, Wi: wi, PDF: 1 - fr, Type: Transmission | Specular, Valid: true}, true
}
