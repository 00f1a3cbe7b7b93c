// Image decoding for texture maps. Registers PNG, BMP, and TIFF decoders
// (the teacher only wires PNG/JPEG) per SPEC_FULL.md's domain stack,
// which names golang.org/x/image's bmp/tiff decoders as formats a scene's
// texture references may use; materials.NewImageTexture does the actual
// mipmap build from the decoded image.Image.
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// LoadImage decodes filename (format auto-detected from its header) for
// use as a texture map.
func LoadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: open image %q: %w", filename, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("loaders: decode image %q: %w", filename, err)
	}
	return img, nil
}
