package materials

import (
	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/bsdf"
	"github.com/quantplane/photon/pkg/core"
)

// Matte is a purely diffuse material: Lambertian when Roughness is zero,
// Oren-Nayar otherwise.
type Matte struct {
	R         Texture
	Roughness ScalarTexture
}

func NewMatte(r Texture, roughness ScalarTexture) *Matte {
	return &Matte{R: r, Roughness: roughness}
}

func (m *Matte) ComputeScatteringFunctions(si core.SurfaceInteraction, ar *arena.Arena, mode TransportMode, allowMultipleLobes bool) *bsdf.BSDF {
	b := bsdf.New(si.N, si.Shading.N, si.Shading.DPDU, 1)
	r := m.R.Evaluate(si).Clamp(0, 1)
	if r.IsBlack() {
		return b
	}

	roughness := 0.0
	if m.Roughness != nil {
		roughness = m.Roughness.EvaluateScalar(si)
	}

	if roughness == 0 {
		lobe := ar.AllocLambertian()
		*lobe = bsdf.LambertianReflection{R: r}
		b.Add(lobe)
	} else {
		lobe := ar.AllocOrenNayar()
		*lobe = *bsdf.NewOrenNayar(r, roughness)
		b.Add(lobe)
	}
	return b
}
