package materials

import (
	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/bsdf"
	"github.com/quantplane/photon/pkg/core"
)

// Glass is a dielectric interface: reflective and transmissive, smooth
// or rough. When both roughness components are zero and the caller
// allows multi-lobe sampling, reflection and transmission collapse into
// a single Fresnel-specular lobe (one sample covers both events via
// probability branching); otherwise they are added as separate lobes so
// a multi-lobe-disallowing caller (e.g. a light-transport algorithm that
// wants single-lobe delta sampling per bounce) can pick one explicitly.
type Glass struct {
	Kr, Kt         Texture
	URoughness     ScalarTexture
	VRoughness     ScalarTexture
	Eta            float64
	RemapRoughness bool
}

func NewGlass(kr, kt Texture, uRough, vRough ScalarTexture, eta float64, remap bool) *Glass {
	return &Glass{Kr: kr, Kt: kt, URoughness: uRough, VRoughness: vRough, Eta: eta, RemapRoughness: remap}
}

func (g *Glass) ComputeScatteringFunctions(si core.SurfaceInteraction, ar *arena.Arena, mode TransportMode, allowMultipleLobes bool) *bsdf.BSDF {
	b := bsdf.New(si.N, si.Shading.N, si.Shading.DPDU, g.Eta)

	r := g.Kr.Evaluate(si).Clamp(0, 1)
	t := g.Kt.Evaluate(si).Clamp(0, 1)
	if r.IsBlack() && t.IsBlack() {
		return b
	}

	uRough, vRough := 0.0, 0.0
	if g.URoughness != nil {
		uRough = g.URoughness.EvaluateScalar(si)
	}
	if g.VRoughness != nil {
		vRough = g.VRoughness.EvaluateScalar(si)
	}
	isSmooth := uRough == 0 && vRough == 0

	if isSmooth && allowMultipleLobes && !r.IsBlack() && !t.IsBlack() {
		lobe := ar.AllocFresnelSpecular()
		*lobe = bsdf.FresnelSpecular{
			R: r, T: t, EtaA: 1, EtaB: g.Eta,
			TransportRadiance: mode == Radiance,
		}
		b.Add(lobe)
		return b
	}

	if !r.IsBlack() {
		if isSmooth {
			lobe := ar.AllocSpecularReflection()
			*lobe = bsdf.SpecularReflection{R: r, Fresnel: bsdf.FresnelDielectric{EtaI: 1, EtaT: g.Eta}}
			b.Add(lobe)
		} else {
			distrib := bsdf.NewTrowbridgeReitzFromRoughness(uRough, vRough, g.RemapRoughness)
			lobe := ar.AllocMicrofacetReflection()
			*lobe = bsdf.MicrofacetReflection{R: r, Distribution: distrib, Fresnel: bsdf.FresnelDielectric{EtaI: 1, EtaT: g.Eta}}
			b.Add(lobe)
		}
	}

	if !t.IsBlack() {
		if isSmooth {
			lobe := ar.AllocSpecularTransmission()
			*lobe = *bsdf.NewSpecularTransmission(t, 1, g.Eta, mode == Radiance)
			b.Add(lobe)
		} else {
			distrib := bsdf.NewTrowbridgeReitzFromRoughness(uRough, vRough, g.RemapRoughness)
			lobe := ar.AllocMicrofacetTransmission()
			*lobe = *bsdf.NewMicrofacetTransmission(t, distrib, 1, g.Eta, mode == Radiance)
			b.Add(lobe)
		}
	}

	return b
}
