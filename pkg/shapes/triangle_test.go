package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantplane/photon/pkg/core"
)

func simpleMesh() *TriangleMesh {
	return &TriangleMesh{
		Vertices: []core.Point3{
			core.NewPoint3(-1, -1, 0),
			core.NewPoint3(1, -1, 0),
			core.NewPoint3(0, 1, 0),
		},
		Indices: []int{0, 1, 2},
	}
}

func TestTriangleIntersectCenter(t *testing.T) {
	tri := NewTriangle(simpleMesh(), 0)
	ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVector3(0, 0, 1))

	si, tHit, ok := tri.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, tHit, 1e-9)
	assert.InDelta(t, 0, si.P.X, 1e-9)
}

func TestTriangleIntersectMiss(t *testing.T) {
	tri := NewTriangle(simpleMesh(), 0)
	ray := core.NewRay(core.NewPoint3(10, 10, -5), core.NewVector3(0, 0, 1))

	_, _, ok := tri.Intersect(ray)
	assert.False(t, ok)
}

// Adjacent triangles sharing an edge must not leak a gap or double-hit a
// ray aimed exactly at the shared edge, the defining property of the
// watertight algorithm.
func TestTriangleWatertightSharedEdge(t *testing.T) {
	mesh := &TriangleMesh{
		Vertices: []core.Point3{
			core.NewPoint3(-1, -1, 0),
			core.NewPoint3(1, -1, 0),
			core.NewPoint3(1, 1, 0),
			core.NewPoint3(-1, 1, 0),
		},
		Indices: []int{0, 1, 2, 0, 2, 3},
	}
	t0 := NewTriangle(mesh, 0)
	t1 := NewTriangle(mesh, 1)

	// Ray toward the shared diagonal edge (0,0)-(1,1) midpoint region.
	ray := core.NewRay(core.NewPoint3(0.5, 0.5, -5), core.NewVector3(0, 0, 1))
	_, _, ok0 := t0.Intersect(ray)
	_, _, ok1 := t1.Intersect(ray)
	assert.True(t, ok0 || ok1)
	assert.False(t, ok0 && ok1)
}

func TestTriangleAreaRightTriangle(t *testing.T) {
	mesh := &TriangleMesh{
		Vertices: []core.Point3{
			core.NewPoint3(0, 0, 0),
			core.NewPoint3(2, 0, 0),
			core.NewPoint3(0, 2, 0),
		},
		Indices: []int{0, 1, 2},
	}
	tri := NewTriangle(mesh, 0)
	assert.InDelta(t, 2.0, tri.Area(), 1e-9)
}
