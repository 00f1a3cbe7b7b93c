package camera

import (
	"fmt"
	"sync"

	"github.com/quantplane/photon/pkg/core"
)

// Film stores the resolution and a pixel buffer, mutated under a RWMutex
// so concurrent tile workers can write disjoint pixels while a reader
// (e.g. mid-render serialization) can take a consistent snapshot. Grounded
// on the thread-safety pattern of the teacher's SplatQueue, generalized
// from a mutex-guarded append-only slice to a mutex-guarded pixel grid.
type Film struct {
	width, height int

	mu     sync.RWMutex
	pixels []core.Spectrum
}

// NewFilm allocates a film of the given resolution; both dimensions must
// be positive (the CLI/config layer is responsible for rejecting a
// non-positive resolution before this point, per spec.md §7 category 5).
func NewFilm(width, height int) *Film {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("camera: film resolution must be positive, got %dx%d", width, height))
	}
	return &Film{
		width:  width,
		height: height,
		pixels: make([]core.Spectrum, width*height),
	}
}

func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }

// Bounds returns the pixel rectangle [0, resolution) the integrator
// iterates over.
func (f *Film) Bounds() (minX, minY, maxX, maxY int) {
	return 0, 0, f.width, f.height
}

// AddSample writes value at pixel, weighted by weight, replacing the
// pixel outright. It does not accumulate: when a pixel receives several
// samples (the Whitted integrator passes every sample of a pixel here),
// only the last one is kept.
func (f *Film) AddSample(x, y int, value core.Spectrum, weight float64) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pixels[y*f.width+x] = value.Scale(weight)
}

// At returns the current value at pixel (x, y).
func (f *Film) At(x, y int) core.Spectrum {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pixels[y*f.width+x]
}

// Snapshot returns a row-major copy of the entire pixel buffer, safe to
// read without racing concurrent AddSample calls.
func (f *Film) Snapshot() []core.Spectrum {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]core.Spectrum, len(f.pixels))
	copy(out, f.pixels)
	return out
}
