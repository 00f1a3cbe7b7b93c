package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse([]string{"scene.pbrt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"scene.pbrt"}, opts.InputFiles)
	assert.Equal(t, "./out.png", opts.OutFile)
	assert.Equal(t, "info", opts.MinLogLevel)
	assert.False(t, opts.Quick)
	assert.True(t, opts.CropWindow.Empty())
}

func TestParseRequiresInputFile(t *testing.T) {
	_, err := Parse([]string{"--quick"})
	assert.Error(t, err)
}

func TestParseCropWindowFlag(t *testing.T) {
	opts, err := Parse([]string{"--crop-window=10,20,30,40", "scene.pbrt"})
	require.NoError(t, err)
	assert.Equal(t, CropWindow{X0: 10, X1: 20, Y0: 30, Y1: 40}, opts.CropWindow)
}

func TestParseCropWindowRejectsMalformedValue(t *testing.T) {
	_, err := Parse([]string{"--crop-window=10,20,30", "scene.pbrt"})
	assert.Error(t, err)
}

func TestParseFlagsOverrideProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
outfile: profile-out.png
nthreads: 8
quiet: true
minloglevel: error
`), 0o644))

	opts, err := Parse([]string{"--profile", path, "--outfile=cli-out.png", "scene.pbrt"})
	require.NoError(t, err)

	assert.Equal(t, "cli-out.png", opts.OutFile) // flag wins
	assert.Equal(t, 8, opts.NumThreads)           // from profile
	assert.True(t, opts.Quiet)                    // from profile
	assert.Equal(t, "error", opts.MinLogLevel)    // from profile
}

func TestParseMissingProfileFileErrors(t *testing.T) {
	_, err := Parse([]string{"--profile", "/no/such/profile.yaml", "scene.pbrt"})
	assert.Error(t, err)
}
