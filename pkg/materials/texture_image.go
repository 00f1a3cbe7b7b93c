package materials

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/quantplane/photon/pkg/core"
)

// ImageTexture samples a decoded image, pre-filtered into a mipmap chain
// so a ray differential's footprint on the surface maps to a coarser
// level instead of aliasing against the source resolution — the
// teacher's ImageTexture only ever samples the full-resolution image.
type ImageTexture struct {
	levels [][]core.Spectrum // levels[0] is full resolution
	widths, heights []int
}

// NewImageTexture builds the full mipmap chain from img by repeatedly
// halving resolution with a Lanczos filter until a level would be
// smaller than one texel in either dimension.
func NewImageTexture(img image.Image) *ImageTexture {
	t := &ImageTexture{}
	level := toRGBLevel(img)
	t.appendLevel(level)

	for level.Bounds().Dx() > 1 && level.Bounds().Dy() > 1 {
		w := max(1, level.Bounds().Dx()/2)
		h := max(1, level.Bounds().Dy()/2)
		level = imaging.Resize(level, w, h, imaging.Lanczos)
		t.appendLevel(level)
	}
	return t
}

func toRGBLevel(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

func (t *ImageTexture) appendLevel(img *image.NRGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pixels := make([]core.Spectrum, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels[y*w+x] = core.NewSpectrum(
				float64(r)/0xffff,
				float64(g)/0xffff,
				float64(b)/0xffff,
			)
		}
	}
	t.levels = append(t.levels, pixels)
	t.widths = append(t.widths, w)
	t.heights = append(t.heights, h)
}

// Evaluate samples the mipmap at the level levelForFootprint estimates
// from si's surface partials (ray differentials are not consulted),
// bilinearly filtering within that level.
func (t *ImageTexture) Evaluate(si core.SurfaceInteraction) core.Spectrum {
	u, v := wrapUV(si.UV.X, si.UV.Y)

	level := t.levelForFootprint(si)
	w, h := t.widths[level], t.heights[level]
	pixels := t.levels[level]

	fx := u*float64(w) - 0.5
	fy := (1 - v) * float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	at := func(x, y int) core.Spectrum {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return pixels[y*w+x]
	}

	c00 := at(x0, y0)
	c10 := at(x0+1, y0)
	c01 := at(x0, y0+1)
	c11 := at(x0+1, y0+1)

	top := c00.Scale(1 - dx).Add(c10.Scale(dx))
	bottom := c01.Scale(1 - dx).Add(c11.Scale(dx))
	return top.Scale(1 - dy).Add(bottom.Scale(dy))
}

// levelForFootprint estimates a texel-space footprint from the surface's
// parametric partials (a coarse proxy for the true screen-space UV
// differential, which would require threading ray-differential
// derivatives through every shape's Intersect) and picks the coarsest
// mip level that does not undersample it.
func (t *ImageTexture) levelForFootprint(si core.SurfaceInteraction) int {
	width := math.Max(si.DPDU.Length(), si.DPDV.Length())
	if width <= 0 || math.IsNaN(width) {
		return 0
	}
	level := int(math.Log2(math.Max(1, width)))
	if level < 0 {
		level = 0
	}
	if level >= len(t.levels) {
		level = len(t.levels) - 1
	}
	return level
}

func wrapUV(u, v float64) (float64, float64) {
	u -= math.Floor(u)
	v -= math.Floor(v)
	return u, v
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
