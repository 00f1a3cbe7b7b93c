// Package config turns command-line flags (and an optional YAML
// profile file) into a RenderOptions value, the way the teacher's
// main.go turns flag.FlagSet into its Config struct.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CropWindow is a pixel rectangle restricting the render to a subset of
// the film (spec.md §6's --crop-window x0,x1,y0,y1).
type CropWindow struct {
	X0 int `yaml:"x0"`
	X1 int `yaml:"x1"`
	Y0 int `yaml:"y0"`
	Y1 int `yaml:"y1"`
}

// Empty reports the zero CropWindow, meaning "render the whole film".
func (c CropWindow) Empty() bool {
	return c == CropWindow{}
}

// RenderOptions is the fully resolved set of options a render invocation
// runs with: CLI flags layered over an optional --profile YAML file,
// flags always taking precedence.
type RenderOptions struct {
	InputFiles  []string   `yaml:"input_files"`
	OutFile     string     `yaml:"outfile"`
	Quick       bool       `yaml:"quick"`
	Quiet       bool       `yaml:"quiet"`
	NumThreads  int        `yaml:"nthreads"`
	CropWindow  CropWindow `yaml:"crop_window"`
	LogDir      string     `yaml:"logdir"`
	LogToStderr bool       `yaml:"logtostderr"`
	MinLogLevel string     `yaml:"minloglevel"`
	Verbosity   int        `yaml:"verbosity"`
	Cat         bool       `yaml:"cat"`
	ToPLY       bool       `yaml:"toply"`
}

// Default returns the baseline options a bare `photon scene.pbrt`
// invocation runs with.
func Default() RenderOptions {
	return RenderOptions{
		OutFile:     "./out.png",
		MinLogLevel: "info",
	}
}

// Parse parses args (normally os.Args[1:]) into a RenderOptions,
// merging in a --profile YAML file if given. At least one positional
// input scene file is required.
func Parse(args []string) (*RenderOptions, error) {
	opts := Default()

	var profilePath, cropFlag string
	fs := flag.NewFlagSet("photon", flag.ContinueOnError)
	fs.StringVar(&profilePath, "profile", "", "YAML file of default render options; CLI flags always override it")
	fs.StringVar(&cropFlag, "crop-window", "", "pixel rectangle x0,x1,y0,y1 to render")
	fs.IntVar(&opts.NumThreads, "nthreads", 0, "number of render worker threads (0 = GOMAXPROCS)")
	fs.StringVar(&opts.OutFile, "outfile", opts.OutFile, "output PNG path")
	fs.BoolVar(&opts.Quick, "quick", false, "render at reduced quality for a fast preview")
	fs.BoolVar(&opts.Quiet, "quiet", false, "suppress the per-file progress log messages")
	fs.StringVar(&opts.LogDir, "logdir", "", "directory to write log files to")
	fs.BoolVar(&opts.LogToStderr, "logtostderr", false, "also log to stderr")
	fs.StringVar(&opts.MinLogLevel, "minloglevel", opts.MinLogLevel, "minimum log level: info|warn|error|fatal")
	fs.IntVar(&opts.Verbosity, "verbosity", 0, "verbose logging level, like glog -v")
	fs.BoolVar(&opts.Cat, "cat", false, "print a reformatted scene and exit")
	fs.BoolVar(&opts.ToPLY, "toply", false, "with --cat, also dump triangle meshes as PLY")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.InputFiles = fs.Args()

	if cropFlag != "" {
		cw, err := parseCropWindow(cropFlag)
		if err != nil {
			return nil, fmt.Errorf("config: --crop-window: %w", err)
		}
		opts.CropWindow = cw
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if profilePath != "" {
		if err := mergeProfile(&opts, profilePath, explicit); err != nil {
			return nil, err
		}
	}

	if len(opts.InputFiles) == 0 {
		return nil, fmt.Errorf("config: no input scene file given")
	}
	return &opts, nil
}

// mergeProfile fills in fields of opts from the YAML file at path,
// skipping any field whose corresponding flag was set explicitly on the
// command line.
func mergeProfile(opts *RenderOptions, path string, explicit map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read profile %q: %w", path, err)
	}
	var file RenderOptions
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse profile %q: %w", path, err)
	}

	if !explicit["nthreads"] && file.NumThreads != 0 {
		opts.NumThreads = file.NumThreads
	}
	if !explicit["outfile"] && file.OutFile != "" {
		opts.OutFile = file.OutFile
	}
	if !explicit["quick"] && file.Quick {
		opts.Quick = true
	}
	if !explicit["quiet"] && file.Quiet {
		opts.Quiet = true
	}
	if !explicit["crop-window"] && !file.CropWindow.Empty() {
		opts.CropWindow = file.CropWindow
	}
	if !explicit["logdir"] && file.LogDir != "" {
		opts.LogDir = file.LogDir
	}
	if !explicit["logtostderr"] && file.LogToStderr {
		opts.LogToStderr = true
	}
	if !explicit["minloglevel"] && file.MinLogLevel != "" {
		opts.MinLogLevel = file.MinLogLevel
	}
	if !explicit["verbosity"] && file.Verbosity != 0 {
		opts.Verbosity = file.Verbosity
	}
	if !explicit["cat"] && file.Cat {
		opts.Cat = true
	}
	if !explicit["toply"] && file.ToPLY {
		opts.ToPLY = true
	}
	if len(opts.InputFiles) == 0 && len(file.InputFiles) > 0 {
		opts.InputFiles = file.InputFiles
	}
	return nil
}

func parseCropWindow(s string) (CropWindow, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return CropWindow{}, fmt.Errorf("expected x0,x1,y0,y1, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return CropWindow{}, fmt.Errorf("field %d (%q) is not an integer", i, p)
		}
		vals[i] = v
	}
	return CropWindow{X0: vals[0], X1: vals[1], Y0: vals[2], Y1: vals[3]}, nil
}
