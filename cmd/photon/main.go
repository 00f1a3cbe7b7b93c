// Command photon is the CLI entrypoint: parse flags (pkg/config), load
// one or more PBRT scene files (pkg/loaders), render each with the
// Whitted integrator (pkg/integrator), and write a PNG, following the
// teacher's main.go shape of flag-parse -> build scene -> render ->
// write image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/quantplane/photon/pkg/arena"
	"github.com/quantplane/photon/pkg/camera"
	"github.com/quantplane/photon/pkg/config"
	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/integrator"
	"github.com/quantplane/photon/pkg/loaders"
	"github.com/quantplane/photon/pkg/logging"
	"github.com/quantplane/photon/pkg/sampler"
)

// arenaCapacity is the initial size of each lobe-kind slab in a worker's
// arena; it is not a limit, since slabs grow on demand.
const arenaCapacity = 8

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "photon: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Options{
		ToStderr:  opts.LogToStderr,
		Dir:       opts.LogDir,
		MinLevel:  opts.MinLogLevel,
		Verbosity: opts.Verbosity,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "photon: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if opts.Cat {
		return runCat(opts, logger)
	}
	return runRender(opts, logger)
}

// runCat implements spec.md §6's --cat/--toply supplement: print a
// reformatted version of every input file to stdout without rendering,
// additionally dumping triangle meshes as PLY files under --toply.
func runCat(opts *config.RenderOptions, logger *logging.Logger) int {
	for _, path := range opts.InputFiles {
		parsed, err := loaders.LoadPBRT(path)
		if err != nil {
			logger.Printf("photon: cat %s: %v", path, err)
			return 1
		}
		fmt.Println(loaders.FormatPBRTScene(parsed))
		if opts.ToPLY {
			baseDir := filepath.Dir(path)
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			n, err := loaders.DumpTriangleMeshesAsPLY(parsed, baseDir, stem)
			if err != nil {
				logger.Printf("photon: toply %s: %v", path, err)
				return 1
			}
			logger.Printf("photon: wrote %d PLY mesh(es) for %s", n, path)
		}
	}
	return 0
}

func runRender(opts *config.RenderOptions, logger *logging.Logger) int {
	numThreads := opts.NumThreads
	if numThreads <= 0 {
		numThreads = runtime.GOMAXPROCS(0)
	}

	for i, path := range opts.InputFiles {
		if !opts.Quiet {
			logger.Printf("photon: rendering %s", path)
		}
		outPath := outputPathFor(opts, i)
		if err := renderOne(path, outPath, opts, numThreads, logger); err != nil {
			logger.Printf("photon: %s: %v", path, err)
			return 1
		}
		if !opts.Quiet {
			logger.Printf("photon: wrote %s", outPath)
		}
	}
	return 0
}

// outputPathFor names the output file for the i'th input when more than
// one scene file is given: --outfile is used as-is for a single input,
// and suffixed with the input's index for multiple inputs so a batch
// render doesn't silently overwrite its own output file on every
// iteration (spec.md §6 names a single default outfile but a plural
// "set of input scene files").
func outputPathFor(opts *config.RenderOptions, index int) string {
	if len(opts.InputFiles) == 1 {
		return opts.OutFile
	}
	ext := filepath.Ext(opts.OutFile)
	base := strings.TrimSuffix(opts.OutFile, ext)
	return fmt.Sprintf("%s_%d%s", base, index, ext)
}

func renderOne(path, outPath string, opts *config.RenderOptions, numThreads int, logger *logging.Logger) error {
	parsed, err := loaders.LoadPBRT(path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	built, err := loaders.Build(parsed, filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	rect := image.Rect(0, 0, built.Width, built.Height)
	if cw := opts.CropWindow; !cw.Empty() {
		rect = rect.Intersect(image.Rect(cw.X0, cw.Y0, cw.X1, cw.Y1))
	}

	samplesPerPixel := 16
	maxDepth := 5
	if opts.Quick {
		samplesPerPixel = 4
		maxDepth = 3
	}

	film := camera.NewFilm(built.Width, built.Height)
	integ := integrator.NewWhittedIntegrator(maxDepth)
	integ.Logger = logger

	renderTiled(built, film, rect, integ, samplesPerPixel, numThreads)

	return writePNG(outPath, film, rect)
}

// writePNG encodes the pixels within rect (spec.md §6's crop window, or
// the whole film when none was given) into a PNG whose own origin is
// (0, 0) regardless of where rect sits within the film.
func writePNG(path string, film *camera.Film, rect image.Rectangle) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x-rect.Min.X, y-rect.Min.Y, toSRGB(film.At(x, y)))
		}
	}
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

// toSRGB implements spec.md §6's image-output rule literally: clamp to
// [0, 1], gamma 2.2 encode, truncate (not round) to a byte.
func toSRGB(s core.Spectrum) color.RGBA {
	g := s.Clamp(0, 1).GammaCorrect(2.2)
	return color.RGBA{
		R: uint8(g.R * 255),
		G: uint8(g.G * 255),
		B: uint8(g.B * 255),
		A: 255,
	}
}

// renderTiled fans the per-row render work of spec.md §5 out across
// numThreads workers, each owning its own Sampler and Arena, and
// restricts the rendered region to rect.
func renderTiled(built *loaders.BuildResult, film *camera.Film, rect image.Rectangle, integ *integrator.WhittedIntegrator, samplesPerPixel, numThreads int) {
	rows := make(chan int, rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		rows <- y
	}
	close(rows)

	done := make(chan struct{}, numThreads)
	for w := 0; w < numThreads; w++ {
		go func(seed int64) {
			samp := sampler.NewRandomSampler(samplesPerPixel, rand.New(rand.NewSource(seed)))
			ar := arena.New(arenaCapacity)
			for y := range rows {
				for x := rect.Min.X; x < rect.Max.X; x++ {
					integ.RenderPixel(x, y, built.Camera, film, built.Scene, samp, ar)
				}
			}
			done <- struct{}{}
		}(int64(w) + 1)
	}
	for w := 0; w < numThreads; w++ {
		<-done
	}
}
