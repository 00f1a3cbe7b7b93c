// Package sampler implements the per-pixel sample sequence spec.md §4.8
// names: a fixed sample budget that jitters the film point within each
// pixel. Grounded on the teacher's tile_renderer.go per-pixel sampling
// loop (a *rand.Rand-driven `for ps.SampleCount < maxSamples` loop calling
// camera.GetRay per iteration), restructured around the StartPixel/
// StartNext iterator shape spec.md names instead of the teacher's
// adaptive-convergence stopping rule — this renderer always spends its
// full fixed budget per pixel.
package sampler

import (
	"math/rand"

	"github.com/quantplane/photon/pkg/camera"
	"github.com/quantplane/photon/pkg/core"
)

// RandomSampler hands out samplesPerPixel jittered samples per pixel, in
// sequence, via StartPixel/StartNext.
type RandomSampler struct {
	samplesPerPixel int
	rng             *rand.Rand

	pixelX, pixelY int
	sampleIndex    int
}

func NewRandomSampler(samplesPerPixel int, rng *rand.Rand) *RandomSampler {
	return &RandomSampler{samplesPerPixel: samplesPerPixel, rng: rng}
}

func (s *RandomSampler) SamplesPerPixel() int { return s.samplesPerPixel }

// StartPixel resets the sampler to the first sample of the given pixel.
func (s *RandomSampler) StartPixel(x, y int) {
	s.pixelX, s.pixelY = x, y
	s.sampleIndex = 0
}

// StartNext advances to the next sample of the current pixel, returning
// false once samplesPerPixel samples have been taken.
func (s *RandomSampler) StartNext() bool {
	s.sampleIndex++
	return s.sampleIndex < s.samplesPerPixel
}

// CameraSample returns a jittered film point for the current pixel:
// pixel + jitter, jitter uniform in [0,1)^2.
func (s *RandomSampler) CameraSample() camera.Sample {
	return camera.Sample{
		FilmPoint: core.NewVec2(
			float64(s.pixelX)+s.rng.Float64(),
			float64(s.pixelY)+s.rng.Float64(),
		),
		LensPoint: core.NewVec2(s.rng.Float64(), s.rng.Float64()),
	}
}

// Get1D and Get2D return additional jittered samples for use within a
// single camera sample (e.g. light and BSDF sampling in the integrator).
func (s *RandomSampler) Get1D() float64 { return s.rng.Float64() }

func (s *RandomSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.rng.Float64(), s.rng.Float64())
}
