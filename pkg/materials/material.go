// Package materials implements the material recipes that populate a
// BSDF's lobes from a surface intersection: Matte, Mirror, Plastic, and
// Glass. Each is a rule, not a BSDF itself — given an intersection and a
// per-pixel arena it allocates lobes from the arena and wires them
// together, exactly the shape spec.md's Material entity describes.
package materials

import (
	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/bsdf"
	"github.com/quantplane/photon/pkg/core"
)

// TransportMode distinguishes camera rays carrying radiance from light
// rays carrying importance, since specular transmission scales
// differently between the two (see bsdf.SpecularTransmission).
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// Material populates a BSDF with lobes allocated from ar for the given
// surface interaction. allowMultipleLobes lets Glass decide between a
// single combined Fresnel-specular lobe and separate reflection/
// transmission lobes (a caller passing false, as the Whitted integrator
// does, gets separate lobes so it can sample reflection and transmission
// one at a time).
type Material interface {
	ComputeScatteringFunctions(si core.SurfaceInteraction, ar *arena.Arena, mode TransportMode, allowMultipleLobes bool) *bsdf.BSDF
}

// Texture evaluates a spatially varying quantity at a surface point,
// driven by its UV and (for mipmap filtering) a footprint estimated from
// the surface interaction's parametric partials.
type Texture interface {
	Evaluate(si core.SurfaceInteraction) core.Spectrum
}

// ConstantTexture returns the same value everywhere.
type ConstantTexture struct {
	Value core.Spectrum
}

func NewConstantTexture(v core.Spectrum) ConstantTexture { return ConstantTexture{Value: v} }

func (c ConstantTexture) Evaluate(core.SurfaceInteraction) core.Spectrum { return c.Value }

// ScalarTexture is the single-channel analogue of Texture, used for
// roughness and similar scalar material parameters.
type ScalarTexture interface {
	EvaluateScalar(si core.SurfaceInteraction) float64
}

type ConstantScalarTexture struct {
	Value float64
}

func NewConstantScalarTexture(v float64) ConstantScalarTexture { return ConstantScalarTexture{Value: v} }

func (c ConstantScalarTexture) EvaluateScalar(core.SurfaceInteraction) float64 { return c.Value }
