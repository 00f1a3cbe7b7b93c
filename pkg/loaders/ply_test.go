package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantplane/photon/pkg/core"
)

// writeTestPLY writes a minimal ASCII PLY file matching the fixed line
// offsets LoadPLY reads: vertex count at line 4 field 3, face count at
// line 10 field 3, vertices starting at line 13, faces immediately after.
func writeTestPLY(t *testing.T) string {
	t.Helper()
	content := "ply\n" +
		"format ascii 1.0\n" +
		"comment made by test\n" +
		"element vertex 3\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"comment each vertex row also carries a normal\n" +
		"comment which the sniffer ignores\n" +
		"element face 1\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"0 0 0 0 0 1\n" +
		"1 0 0 0 0 1\n" +
		"0 1 0 0 0 1\n" +
		"3 0 1 2\n"

	path := filepath.Join(t.TempDir(), "tri.ply")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPLYReadsTriangleAtFixedOffsets(t *testing.T) {
	path := writeTestPLY(t)
	mesh, err := LoadPLY(path, core.IdentityTransform())
	require.NoError(t, err)

	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, core.NewPoint3(0, 0, 0), mesh.Vertices[0])
	assert.Equal(t, core.NewPoint3(1, 0, 0), mesh.Vertices[1])
	assert.Equal(t, core.NewPoint3(0, 1, 0), mesh.Vertices[2])
	assert.Equal(t, []int{0, 1, 2}, mesh.Indices)
}

func TestLoadPLYAppliesObjectToWorldTransform(t *testing.T) {
	path := writeTestPLY(t)
	xf := core.Translate(core.NewVector3(10, 0, 0))
	mesh, err := LoadPLY(path, xf)
	require.NoError(t, err)

	assert.Equal(t, core.NewPoint3(10, 0, 0), mesh.Vertices[0])
	assert.Equal(t, core.NewPoint3(11, 0, 0), mesh.Vertices[1])
}

func TestLoadPLYMissingFileReturnsError(t *testing.T) {
	_, err := LoadPLY(filepath.Join(t.TempDir(), "nope.ply"), core.IdentityTransform())
	assert.Error(t, err)
}
