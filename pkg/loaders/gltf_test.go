package loaders

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantplane/photon/pkg/core"
)

// writeTestGLTF writes a minimal single-triangle glTF 2.0 document with
// its vertex/index buffer embedded as a base64 data URI, so the test has
// no dependency on any separate .bin file.
func writeTestGLTF(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	for _, f := range positions {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, f))
	}
	indices := []uint16{0, 1, 2}
	for _, idx := range indices {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, idx))
	}

	dataURI := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	doc := fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"mesh": 0}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
  "buffers": [{"uri": %q, "byteLength": %d}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6, "target": 34963}
  ],
  "accessors": [
    {"bufferView": 0, "byteOffset": 0, "componentType": 5126, "count": 3, "type": "VEC3", "max": [1, 1, 0], "min": [0, 0, 0]},
    {"bufferView": 1, "byteOffset": 0, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ]
}`, dataURI, buf.Len())

	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoadGLTFObjectReadsSingleTriangle(t *testing.T) {
	path := writeTestGLTF(t)
	prims, err := LoadGLTFObject(path, core.IdentityTransform(), 3)
	require.NoError(t, err)
	require.Len(t, prims, 1)

	ray := core.NewRay(core.NewPoint3(0.25, 0.25, -5), core.NewVector3(0, 0, 1))
	si, _, hit := prims[0].Intersect(ray)
	require.True(t, hit)
	assert.Equal(t, 3, si.MaterialIndex)
	assert.Equal(t, -1, si.AreaLightIndex)
}

func TestLoadGLTFObjectAppliesInstanceTransform(t *testing.T) {
	path := writeTestGLTF(t)
	xf := core.Translate(core.NewVector3(0, 0, 10))
	prims, err := LoadGLTFObject(path, xf, 0)
	require.NoError(t, err)
	require.Len(t, prims, 1)

	ray := core.NewRay(core.NewPoint3(0.25, 0.25, -5), core.NewVector3(0, 0, 1))
	_, _, hit := prims[0].Intersect(ray)
	assert.True(t, hit)
}

func TestLoadGLTFObjectMissingFileReturnsError(t *testing.T) {
	_, err := LoadGLTFObject(filepath.Join(t.TempDir(), "nope.gltf"), core.IdentityTransform(), 0)
	assert.Error(t, err)
}
