package lights

import "github.com/quantplane/photon/pkg/core"

// PointLight is an isotropic point emitter with no physical extent,
// grounded on the teacher's DiscLight but collapsed to a single point (no
// area sampling, pdf always 1).
type PointLight struct {
	P         core.Point3
	Intensity core.Spectrum // radiant intensity I, in W/sr
}

func NewPointLight(p core.Point3, intensity core.Spectrum) *PointLight {
	return &PointLight{P: p, Intensity: intensity}
}

func (l *PointLight) Preprocess(core.Bounds3) {}

func (l *PointLight) Power() core.Spectrum { return l.Intensity.Scale(4 * 3.14159265358979323846) }

func (l *PointLight) BackgroundRadiance(core.Ray) core.Spectrum { return core.SpectrumBlack }

// SampleRadiance returns ωi = normalize(P_L − P), color = I / ‖P_L − P‖²,
// pdf = 1. u is unused since a point light has only one possible sample.
func (l *PointLight) SampleRadiance(it core.Interaction, u core.Vec2) RadianceSample {
	d := l.P.Subtract(it.P)
	distSq := d.LengthSquared()
	if distSq == 0 {
		return RadianceSample{}
	}
	wi := d.Normalize()
	return RadianceSample{
		Color:      l.Intensity.Scale(1 / distSq),
		Wi:         wi,
		PDF:        1,
		LightPoint: l.P,
		LightN:     wi.Negate().ToNormal3(),
		Valid:      true,
	}
}

func (l *PointLight) Emit(core.SurfaceInteraction, core.Vector3) core.Spectrum {
	return core.SpectrumBlack
}
