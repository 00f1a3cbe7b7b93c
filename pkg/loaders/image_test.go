package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImageDecodesPNG(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	f, err := os.Create(testFile)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := LoadImage(testFile)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	r, g, b, _ := img.At(1, 0).RGBA()
	assert.Greater(t, r, uint32(0xff00))
	assert.Less(t, g, uint32(0x0100))
	assert.Less(t, b, uint32(0x0100))
}

func TestLoadImageMissingFileReturnsError(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
