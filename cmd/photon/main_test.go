package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantplane/photon/pkg/config"
	"github.com/quantplane/photon/pkg/core"
)

func TestOutputPathForSingleInputUsesOutfileVerbatim(t *testing.T) {
	opts := &config.RenderOptions{InputFiles: []string{"scene.pbrt"}, OutFile: "./out.png"}
	assert.Equal(t, "./out.png", outputPathFor(opts, 0))
}

func TestOutputPathForMultipleInputsSuffixesIndex(t *testing.T) {
	opts := &config.RenderOptions{InputFiles: []string{"a.pbrt", "b.pbrt"}, OutFile: "./out.png"}
	assert.Equal(t, "./out_0.png", outputPathFor(opts, 0))
	assert.Equal(t, "./out_1.png", outputPathFor(opts, 1))
}

func TestToSRGBClampsAndGammaEncodes(t *testing.T) {
	black := toSRGB(core.SpectrumBlack)
	assert.Equal(t, uint8(0), black.R)

	white := toSRGB(core.SpectrumWhite)
	assert.Equal(t, uint8(255), white.R)

	overbright := toSRGB(core.NewSpectrum(10, 10, 10))
	assert.Equal(t, uint8(255), overbright.R)
}

func TestRunUnknownSceneFileFails(t *testing.T) {
	code := run([]string{filepath.Join(t.TempDir(), "missing.pbrt")})
	assert.Equal(t, 1, code)
}

func TestRunHelpExitsZero(t *testing.T) {
	code := run([]string{"--help"})
	assert.Equal(t, 0, code)
}

func TestRunCatPrintsSceneWithoutRendering(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.pbrt")
	require.NoError(t, os.WriteFile(scenePath, []byte(`WorldBegin
Shape "sphere" "float radius" 1
WorldEnd
`), 0o644))

	code := run([]string{"--cat", scenePath})
	assert.Equal(t, 0, code)
}
