// PLY loading. spec.md §6 is explicit that this is a minimal sniffer, not
// a conformant PLY parser: vertex count lives at line 4 field 3, face
// count at line 10 field 3, by fixed line offset rather than by actually
// parsing the header's element/property declarations. Ported from
// original_source/src/ply.rs's read_ply, which reads the same two fixed
// header lines and two fixed-offset body blocks (ASCII only, triangles
// only, positions only — no normals/colors/UVs).
package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/shapes"
)

// vertexHeaderLine and faceHeaderLine are the fixed 0-indexed line numbers
// a conformant PLY header would not require scanning for, but this
// sniffer reads blindly per spec.md §6.
const (
	vertexHeaderLine = 3
	faceHeaderLine   = 9
	bodyStartLine    = 12
)

// LoadPLY reads filename's vertex and face blocks by fixed line offset
// and builds a world-space triangle mesh under objectToWorld.
func LoadPLY(filename string, objectToWorld core.Transform) (*shapes.TriangleMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: open PLY %q: %w", filename, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: read PLY %q: %w", filename, err)
	}

	vertexCount, err := fieldInt(lines, vertexHeaderLine, 2)
	if err != nil {
		return nil, fmt.Errorf("loaders: PLY %q vertex count: %w", filename, err)
	}
	faceCount, err := fieldInt(lines, faceHeaderLine, 2)
	if err != nil {
		return nil, fmt.Errorf("loaders: PLY %q face count: %w", filename, err)
	}

	vertices := make([]core.Point3, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		line := lineAt(lines, bodyStartLine+i)
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("loaders: PLY %q vertex line %d malformed", filename, bodyStartLine+i)
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		z, errZ := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, fmt.Errorf("loaders: PLY %q vertex line %d: not numeric", filename, bodyStartLine+i)
		}
		vertices = append(vertices, objectToWorld.Point(core.NewPoint3(x, y, z)))
	}

	faceStart := bodyStartLine + vertexCount
	indices := make([]int, 0, faceCount*3)
	for i := 0; i < faceCount; i++ {
		line := lineAt(lines, faceStart+i)
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("loaders: PLY %q face line %d malformed", filename, faceStart+i)
		}
		// fields[0] is the list count (assumed 3); fields[1:4] are indices.
		a, errA := strconv.Atoi(fields[1])
		b, errB := strconv.Atoi(fields[2])
		c, errC := strconv.Atoi(fields[3])
		if errA != nil || errB != nil || errC != nil {
			return nil, fmt.Errorf("loaders: PLY %q face line %d: not integral", filename, faceStart+i)
		}
		indices = append(indices, a, b, c)
	}

	return &shapes.TriangleMesh{Vertices: vertices, Indices: indices}, nil
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

func fieldInt(lines []string, line, field int) (int, error) {
	fields := strings.Fields(lineAt(lines, line))
	if field >= len(fields) {
		return 0, fmt.Errorf("line %d has no field %d", line, field)
	}
	return strconv.Atoi(fields[field])
}
