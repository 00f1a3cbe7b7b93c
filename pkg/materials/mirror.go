package materials

import (
	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/bsdf"
	"github.com/quantplane/photon/pkg/core"
)

// Mirror is a perfectly specular reflector with no Fresnel attenuation
// (a "no-op Fresnel" that reflects 100% at every angle).
type Mirror struct {
	R Texture
}

func NewMirror(r Texture) *Mirror { return &Mirror{R: r} }

func (m *Mirror) ComputeScatteringFunctions(si core.SurfaceInteraction, ar *arena.Arena, mode TransportMode, allowMultipleLobes bool) *bsdf.BSDF {
	b := bsdf.New(si.N, si.Shading.N, si.Shading.DPDU, 1)
	r := m.R.Evaluate(si)
	if r.IsBlack() {
		return b
	}
	lobe := ar.AllocSpecularReflection()
	*lobe = bsdf.SpecularReflection{R: r, Fresnel: bsdf.FresnelNoOp{}}
	b.Add(lobe)
	return b
}
