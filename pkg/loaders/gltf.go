// glTF loading for the "object" half of spec.md §6's
// {lights, shapes, materials, instances, objects, image_size} record: a
// glTF file supplies reusable mesh geometry an instance then places in
// the world under its own transform and material. Grounded on
// mrigankad-gorenderengine/scene/gltf_loader.go's LoadGLTF (same
// qmuntal/gltf + modeler read of POSITION/NORMAL/indices per primitive),
// simplified to this renderer's single-instance-transform model: a glTF
// document's own node hierarchy and per-material textures are not
// reproduced, since this loader answers only "what triangles does this
// object contain", the instance (not the glTF file) owns placement and
// material assignment.
package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/quantplane/photon/pkg/core"
	"github.com/quantplane/photon/pkg/primitive"
	"github.com/quantplane/photon/pkg/shapes"
)

// LoadGLTFObject reads every mesh primitive in the glTF/.glb file at
// path, transforms its vertices by objectToWorld, and returns one
// primitive per triangle bound to materialIndex. Per-primitive
// AreaLightIndex is always -1: glTF objects are never emissive in this
// renderer's data model (emission comes from a scene file's own
// LightSource/AreaLightSource statements, not from imported geometry).
func LoadGLTFObject(path string, objectToWorld core.Transform, materialIndex int) ([]primitive.Primitive, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open glTF %q: %w", path, err)
	}

	var prims []primitive.Primitive
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			triPrims, err := buildGLTFTriangles(doc, *prim, objectToWorld, materialIndex)
			if err != nil {
				return nil, fmt.Errorf("loaders: glTF %q mesh %d primitive %d: %w", path, mi, pi, err)
			}
			prims = append(prims, triPrims...)
		}
	}
	return prims, nil
}

func buildGLTFTriangles(doc *gltf.Document, prim gltf.Primitive, objectToWorld core.Transform, materialIndex int) ([]primitive.Primitive, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var rawNormals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		rawNormals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}

	vertices := make([]core.Point3, len(positions))
	for i, p := range positions {
		vertices[i] = objectToWorld.Point(core.NewPoint3(float64(p[0]), float64(p[1]), float64(p[2])))
	}

	var normals []core.Normal3
	if len(rawNormals) == len(positions) {
		normals = make([]core.Normal3, len(rawNormals))
		for i, n := range rawNormals {
			normals[i] = objectToWorld.Normal(core.NewNormal3(float64(n[0]), float64(n[1]), float64(n[2]))).Normalize()
		}
	}

	var indices []int
	if prim.Indices != nil {
		raw, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		indices = make([]int, len(raw))
		for i, v := range raw {
			indices[i] = int(v)
		}
	} else {
		indices = make([]int, len(vertices))
		for i := range indices {
			indices[i] = i
		}
	}

	mesh := &shapes.TriangleMesh{Vertices: vertices, Normals: normals, Indices: indices}

	prims := make([]primitive.Primitive, 0, len(indices)/3)
	for face := 0; face < len(indices)/3; face++ {
		tri := shapes.NewTriangle(mesh, face)
		prims = append(prims, primitive.NewGeometricPrimitive(tri, materialIndex, -1))
	}
	return prims, nil
}
