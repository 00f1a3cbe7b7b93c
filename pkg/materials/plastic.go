package materials

import (
	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/bsdf"
	"github.com/quantplane/photon/pkg/core"
)

// Plastic layers a Lambertian diffuse base under a dielectric microfacet
// specular coat.
type Plastic struct {
	Kd             Texture
	Ks             Texture
	Roughness      ScalarTexture
	RemapRoughness bool
}

func NewPlastic(kd, ks Texture, roughness ScalarTexture, remapRoughness bool) *Plastic {
	return &Plastic{Kd: kd, Ks: ks, Roughness: roughness, RemapRoughness: remapRoughness}
}

func (p *Plastic) ComputeScatteringFunctions(si core.SurfaceInteraction, ar *arena.Arena, mode TransportMode, allowMultipleLobes bool) *bsdf.BSDF {
	b := bsdf.New(si.N, si.Shading.N, si.Shading.DPDU, 1)

	kd := p.Kd.Evaluate(si).Clamp(0, 1)
	if !kd.IsBlack() {
		lobe := ar.AllocLambertian()
		*lobe = bsdf.LambertianReflection{R: kd}
		b.Add(lobe)
	}

	ks := p.Ks.Evaluate(si).Clamp(0, 1)
	if !ks.IsBlack() {
		rough := 0.0
		if p.Roughness != nil {
			rough = p.Roughness.EvaluateScalar(si)
		}
		distrib := bsdf.NewTrowbridgeReitzFromRoughness(rough, rough, p.RemapRoughness)
		lobe := ar.AllocMicrofacetReflection()
		*lobe = bsdf.MicrofacetReflection{
			R:            ks,
			Distribution: distrib,
			Fresnel:      bsdf.FresnelDielectric{EtaI: 1, EtaT: 1.5},
		}
		b.Add(lobe)
	}

	return b
}
