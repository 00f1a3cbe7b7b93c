package lights

import (
	"math"

	"github.com/quantplane/photon/pkg/core"
)

// AreaShape is the subset of a shapes.Shape a diffuse area light needs:
// its surface area (for the area-sampling PDF) and a uniform area sample.
// Declared locally, mirroring the rest of the module's avoid-the-import
// pattern for narrow cross-package needs, so pkg/lights never has to
// import pkg/shapes just to name the concrete shape types.
type AreaShape interface {
	Area() float64
	SampleArea(u core.Vec2) (core.Point3, core.Normal3)
}

// DiffuseArea wraps a shape with a uniform emitted color: emission equals
// the color when the queried direction leaves the front face (dir·n > 0),
// zero otherwise, per the one-sided emitter spec.md §4.6 names.
type DiffuseArea struct {
	Shape AreaShape
	Color core.Spectrum
}

func NewDiffuseArea(shape AreaShape, color core.Spectrum) *DiffuseArea {
	return &DiffuseArea{Shape: shape, Color: color}
}

func (l *DiffuseArea) Preprocess(core.Bounds3) {}

func (l *DiffuseArea) Power() core.Spectrum {
	return l.Color.Scale(math.Pi * l.Shape.Area())
}

func (l *DiffuseArea) BackgroundRadiance(core.Ray) core.Spectrum { return core.SpectrumBlack }

// emittedTowards returns Color if direction leaves the surface on the side
// n faces, else black — the one-sided emission rule.
func (l *DiffuseArea) emittedTowards(n core.Normal3, direction core.Vector3) core.Spectrum {
	if n.Dot(direction) > 0 {
		return l.Color
	}
	return core.SpectrumBlack
}

// SampleRadiance draws a uniform point on the light's shape and converts
// its area-measure PDF (1/Area) to the solid-angle measure the integrator
// samples lights in, returning the light point and normal so the caller
// can build a shadow ray without re-intersecting the shape. LightPErr is
// left zero.
func (l *DiffuseArea) SampleRadiance(it core.Interaction, u core.Vec2) RadianceSample {
	lightP, lightN := l.Shape.SampleArea(u)
	d := lightP.Subtract(it.P)
	distSq := d.LengthSquared()
	if distSq == 0 {
		return RadianceSample{}
	}
	wi := d.Normalize()

	color := l.emittedTowards(lightN, wi.Negate())
	if color.IsBlack() {
		return RadianceSample{}
	}

	cosAtLight := lightN.Dot(wi.Negate())
	if cosAtLight <= 0 {
		return RadianceSample{}
	}
	areaPDF := 1 / l.Shape.Area()
	pdf := areaPDF * distSq / cosAtLight

	return RadianceSample{
		Color:      color,
		Wi:         wi,
		PDF:        pdf,
		LightPoint: lightP,
		LightN:     lightN,
		Valid:      true,
	}
}

// Emit returns the light's color toward the direction the integrator's ray
// arrived from, respecting one-sided emission.
func (l *DiffuseArea) Emit(si core.SurfaceInteraction, direction core.Vector3) core.Spectrum {
	return l.emittedTowards(si.N, direction)
}
