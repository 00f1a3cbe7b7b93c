// --cat/--toply support (spec.md §6 supplement, SPEC_FULL.md §6):
// reformat a parsed scene back to pbrt-ish text, and dump any inline
// trianglemesh shape as a PLY file in the same fixed-offset layout
// LoadPLY reads, grounded on the original Rust CLI's cat/toply flags
// (original_source/src/options.rs) which name the flags but not their
// output format.
package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quantplane/photon/pkg/core"
)

// FormatPBRTScene renders parsed back to a readable pbrt-style text
// dump. It is not guaranteed to re-parse byte-for-byte identically to
// the source file — only statement type, subtype, and parameters are
// preserved, in the order [camera/film/sampler/integrator, materials,
// shapes, lights, attribute blocks].
func FormatPBRTScene(parsed *PBRTScene) string {
	var b strings.Builder

	if parsed.LookAtEye != nil {
		fmt.Fprintf(&b, "LookAt %s  %s  %s\n",
			formatPoint3(*parsed.LookAtEye), formatPoint3(*parsed.LookAtAt), formatVector3(*parsed.LookAtUp))
	}
	if parsed.Camera != nil {
		formatStatement(&b, *parsed.Camera)
	}
	if parsed.Film != nil {
		formatStatement(&b, *parsed.Film)
	}
	if parsed.Sampler != nil {
		formatStatement(&b, *parsed.Sampler)
	}
	if parsed.Integrator != nil {
		formatStatement(&b, *parsed.Integrator)
	}

	b.WriteString("WorldBegin\n")
	for _, m := range parsed.Materials {
		formatStatement(&b, m)
	}
	for _, s := range parsed.Shapes {
		formatStatement(&b, s)
	}
	for _, l := range parsed.LightSources {
		formatStatement(&b, l)
	}
	for _, block := range parsed.Attributes {
		b.WriteString("AttributeBegin\n")
		for _, m := range block.Materials {
			formatStatement(&b, m)
		}
		for _, l := range block.LightSources {
			formatStatement(&b, l)
		}
		for _, s := range block.Shapes {
			formatStatement(&b, s)
		}
		b.WriteString("AttributeEnd\n")
	}
	b.WriteString("WorldEnd\n")

	return b.String()
}

func formatStatement(b *strings.Builder, stmt PBRTStatement) {
	fmt.Fprintf(b, "%s", stmt.Type)
	if stmt.Subtype != "" {
		fmt.Fprintf(b, " %q", stmt.Subtype)
	}

	names := make([]string, 0, len(stmt.Parameters))
	for name := range stmt.Parameters {
		if name == "_areaLight" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := stmt.Parameters[name]
		fmt.Fprintf(b, " %q", p.Type+" "+name)
		if len(p.Values) == 1 {
			fmt.Fprintf(b, " %s", p.Values[0])
		} else {
			fmt.Fprintf(b, " [%s]", strings.Join(p.Values, " "))
		}
	}
	b.WriteString("\n")
}

func formatPoint3(p core.Point3) string { return fmt.Sprintf("%g %g %g", p.X, p.Y, p.Z) }

// DumpTriangleMeshesAsPLY writes one PLY file per inline "trianglemesh"
// shape statement (those carrying "point3 P" and "integer indices"
// parameters) found anywhere in parsed, named "<stem>_N.ply" under dir.
// It returns how many files were written.
func DumpTriangleMeshesAsPLY(parsed *PBRTScene, dir, stem string) (int, error) {
	count := 0
	dump := func(stmt PBRTStatement) error {
		if stmt.Type != "Shape" || stmt.Subtype != "trianglemesh" {
			return nil
		}
		p, hasP := stmt.Parameters["P"]
		idx, hasIdx := stmt.Parameters["indices"]
		if !hasP || !hasIdx {
			return nil
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.ply", stem, count))
		if err := writeASCIIPLY(path, p.Values, idx.Values); err != nil {
			return err
		}
		count++
		return nil
	}

	for _, s := range parsed.Shapes {
		if err := dump(s); err != nil {
			return count, err
		}
	}
	for _, block := range parsed.Attributes {
		for _, s := range block.Shapes {
			if err := dump(s); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

// writeASCIIPLY writes positions (flat x,y,z,... strings) and indices
// (flat i0,i1,i2,... triangle-index strings) in the exact fixed-line
// layout LoadPLY expects: vertex count at line 4 field 3, face count at
// line 10 field 3, 12 header lines, then the vertex block, then faces.
func writeASCIIPLY(path string, positions, indices []string) error {
	if len(positions)%3 != 0 {
		return fmt.Errorf("loaders: trianglemesh P has %d values, not a multiple of 3", len(positions))
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("loaders: trianglemesh indices has %d values, not a multiple of 3", len(indices))
	}
	vertexCount := len(positions) / 3
	faceCount := len(indices) / 3

	// Line layout matches LoadPLY's fixed offsets exactly: vertex count
	// at (0-indexed) line 3 field 2, face count at line 9 field 2,
	// vertex block starting at line 12.
	var b strings.Builder
	b.WriteString("ply\n")                             // 0
	b.WriteString("format ascii 1.0\n")                 // 1
	b.WriteString("comment generated by photon --toply\n") // 2
	fmt.Fprintf(&b, "element vertex %d\n", vertexCount) // 3
	b.WriteString("property float x\n")                 // 4
	b.WriteString("property float y\n")                 // 5
	b.WriteString("property float z\n")                 // 6
	b.WriteString("comment vertices are positions only\n") // 7
	b.WriteString("comment no normals, colors, or uvs\n")  // 8
	fmt.Fprintf(&b, "element face %d\n", faceCount)     // 9
	b.WriteString("property list uchar int vertex_indices\n") // 10
	b.WriteString("end_header\n")                       // 11

	for i := 0; i < vertexCount; i++ {
		fmt.Fprintf(&b, "%s %s %s\n", positions[3*i], positions[3*i+1], positions[3*i+2])
	}
	for i := 0; i < faceCount; i++ {
		fmt.Fprintf(&b, "3 %s %s %s\n", indices[3*i], indices[3*i+1], indices[3*i+2])
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func formatVector3(v core.Vector3) string { return fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z) }
