// Package accel implements the bounding-volume hierarchy used to
// accelerate ray-primitive intersection. The tree is built recursively
// then flattened into a depth-first array of fixed-size nodes so
// traversal touches contiguous memory instead of chasing pointers.
package accel

import (
	"fmt"
	"sort"

	"github.com/quantplane/photon/pkg/core"
)

// Primitive is the subset of primitive.Primitive this package depends on,
// declared locally so pkg/accel does not import pkg/primitive (which
// itself wraps a BVH — the dependency only runs one way).
type Primitive interface {
	Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool)
	IntersectP(ray core.Ray) bool
	WorldBounds() core.Bounds3
}

// SplitMethod selects the BVH build heuristic.
type SplitMethod int

const (
	SplitSurfaceArea SplitMethod = iota
	SplitMiddle
	SplitEqualCounts
	SplitLinear // HLBVH: declared, not implemented.
)

const maxPrimsInNode = 4
const traversalStackDepth = 64

type buildInfo struct {
	primNum  int
	bounds   core.Bounds3
	centroid core.Point3
}

type buildNode struct {
	bounds       core.Bounds3
	left, right  *buildNode
	splitAxis    int
	firstPrimOff int
	numPrims     int
}

// linearNode is the flattened representation: interior nodes store the
// offset of the second (right) child; the first child always follows
// immediately in the array.
type linearNode struct {
	bounds       core.Bounds3
	primOffset   int // leaf: offset into orderedPrims
	secondChild  int // interior: index of right child
	numPrims     int // 0 for interior nodes
	axis         int
}

// BVH is a flattened bounding volume hierarchy over a fixed primitive set.
type BVH struct {
	nodes        []linearNode
	orderedPrims []Primitive
}

// Build constructs a BVH from prims using the given split method. There is
// no per-call leaf-size parameter: only the SAH split consults the package
// constant maxPrimsInNode. SplitLinear panics: HLBVH is not implemented.
func Build(prims []Primitive, method SplitMethod) *BVH {
	if method == SplitLinear {
		panic("accel: SplitLinear (HLBVH) is not implemented")
	}
	if len(prims) == 0 {
		return &BVH{}
	}

	infos := make([]buildInfo, len(prims))
	for i, p := range prims {
		b := p.WorldBounds()
		infos[i] = buildInfo{primNum: i, bounds: b, centroid: b.Center()}
	}

	var ordered []Primitive
	root := buildRecursive(infos, prims, &ordered, method)

	b := &BVH{orderedPrims: ordered}
	b.nodes = make([]linearNode, 0, countNodes(root))
	b.flatten(root)
	return b
}

func countNodes(n *buildNode) int {
	if n == nil {
		return 0
	}
	if n.left == nil && n.right == nil {
		return 1
	}
	return 1 + countNodes(n.left) + countNodes(n.right)
}

func buildRecursive(infos []buildInfo, prims []Primitive, ordered *[]Primitive, method SplitMethod) *buildNode {
	bounds := core.EmptyBounds3()
	for _, info := range infos {
		bounds = bounds.Union(info.bounds)
	}

	makeLeaf := func() *buildNode {
		first := len(*ordered)
		for _, info := range infos {
			*ordered = append(*ordered, prims[info.primNum])
		}
		return &buildNode{bounds: bounds, firstPrimOff: first, numPrims: len(infos)}
	}

	if len(infos) == 1 {
		return makeLeaf()
	}

	centroidBounds := core.EmptyBounds3()
	for _, info := range infos {
		centroidBounds = centroidBounds.UnionPoint(info.centroid)
	}
	axis := centroidBounds.LongestAxis()
	if centroidBounds.Diagonal().Component(axis) <= 0 {
		return makeLeaf()
	}

	mid := len(infos) / 2
	switch method {
	case SplitMiddle:
		pivot := (centroidBounds.Min.Component(axis) + centroidBounds.Max.Component(axis)) / 2
		m := partition(infos, func(bi buildInfo) bool { return bi.centroid.Component(axis) < pivot })
		if m == 0 || m == len(infos) {
			mid = equalCountsPartition(infos, axis)
		} else {
			mid = m
		}
	case SplitEqualCounts:
		mid = equalCountsPartition(infos, axis)
	case SplitSurfaceArea:
		var ok bool
		mid, ok = sahPartition(infos, axis, bounds)
		if !ok {
			return makeLeaf()
		}
	default:
		panic(fmt.Sprintf("accel: unknown split method %d", method))
	}

	if mid <= 0 || mid >= len(infos) {
		mid = equalCountsPartition(infos, axis)
		if mid <= 0 || mid >= len(infos) {
			return makeLeaf()
		}
	}

	left := buildRecursive(infos[:mid], prims, ordered, method)
	right := buildRecursive(infos[mid:], prims, ordered, method)
	return &buildNode{bounds: bounds, left: left, right: right, splitAxis: axis}
}

// partition reorders infos in place so every element satisfying pred
// comes before every element that doesn't, returning the split index.
func partition(infos []buildInfo, pred func(buildInfo) bool) int {
	i := 0
	for j := 0; j < len(infos); j++ {
		if pred(infos[j]) {
			infos[i], infos[j] = infos[j], infos[i]
			i++
		}
	}
	return i
}

func equalCountsPartition(infos []buildInfo, axis int) int {
	mid := len(infos) / 2
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].centroid.Component(axis) < infos[j].centroid.Component(axis)
	})
	return mid
}

// sahPartition buckets primitives along axis and picks the split with the
// lowest surface-area-heuristic cost, falling back to ok=false (caller
// should emit a leaf) when every bucket split is worse than a leaf.
func sahPartition(infos []buildInfo, axis int, bounds core.Bounds3) (int, bool) {
	const nBuckets = 12
	type bucket struct {
		count  int
		bounds core.Bounds3
	}
	buckets := make([]bucket, nBuckets)
	for i := range buckets {
		buckets[i].bounds = core.EmptyBounds3()
	}

	centroidBounds := core.EmptyBounds3()
	for _, info := range infos {
		centroidBounds = centroidBounds.UnionPoint(info.centroid)
	}
	extent := centroidBounds.Diagonal().Component(axis)

	bucketFor := func(c core.Point3) int {
		b := int(float64(nBuckets) * (c.Component(axis) - centroidBounds.Min.Component(axis)) / extent)
		if b >= nBuckets {
			b = nBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	for _, info := range infos {
		bi := bucketFor(info.centroid)
		buckets[bi].count++
		buckets[bi].bounds = buckets[bi].bounds.Union(info.bounds)
	}

	cost := make([]float64, nBuckets-1)
	for i := 0; i < nBuckets-1; i++ {
		b0, b1 := core.EmptyBounds3(), core.EmptyBounds3()
		count0, count1 := 0, 0
		for j := 0; j <= i; j++ {
			b0 = b0.Union(buckets[j].bounds)
			count0 += buckets[j].count
		}
		for j := i + 1; j < nBuckets; j++ {
			b1 = b1.Union(buckets[j].bounds)
			count1 += buckets[j].count
		}
		sa0, sa1 := 0.0, 0.0
		if count0 > 0 {
			sa0 = b0.SurfaceArea()
		}
		if count1 > 0 {
			sa1 = b1.SurfaceArea()
		}
		cost[i] = 0.125 + (float64(count0)*sa0+float64(count1)*sa1)/bounds.SurfaceArea()
	}

	minCost := cost[0]
	minIdx := 0
	for i := 1; i < len(cost); i++ {
		if cost[i] < minCost {
			minCost = cost[i]
			minIdx = i
		}
	}

	leafCost := float64(len(infos))
	if len(infos) > maxPrimsInNode && minCost >= leafCost {
		return 0, false
	}
	if minCost >= leafCost && len(infos) <= maxPrimsInNode {
		return 0, false
	}

	mid := partition(infos, func(bi buildInfo) bool { return bucketFor(bi.centroid) <= minIdx })
	return mid, true
}

func (b *BVH) flatten(n *buildNode) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, linearNode{})

	if n.left == nil && n.right == nil {
		b.nodes[idx] = linearNode{bounds: n.bounds, primOffset: n.firstPrimOff, numPrims: n.numPrims}
		return idx
	}

	b.flatten(n.left)
	secondChild := b.flatten(n.right)
	b.nodes[idx] = linearNode{bounds: n.bounds, axis: n.splitAxis, secondChild: secondChild, numPrims: 0}
	return idx
}

func (b *BVH) WorldBounds() core.Bounds3 {
	if len(b.nodes) == 0 {
		return core.EmptyBounds3()
	}
	return b.nodes[0].bounds
}

// Intersect returns the closest hit along ray, traversing the flattened
// tree with a small fixed-depth stack rather than recursion.
func (b *BVH) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	if len(b.nodes) == 0 {
		return core.SurfaceInteraction{}, 0, false
	}

	invDir := core.NewVector3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)
	dirIsNeg := [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0}

	var stack [traversalStackDepth]int
	stackPtr := 0
	current := 0

	var closest core.SurfaceInteraction
	var closestT float64
	hitAnything := false
	r := ray

	for {
		node := &b.nodes[current]
		if node.bounds.IntersectP(r, 0, r.TMax, invDir, dirIsNeg) {
			if node.numPrims > 0 {
				for i := 0; i < node.numPrims; i++ {
					p := b.orderedPrims[node.primOffset+i]
					if si, t, ok := p.Intersect(r); ok {
						hitAnything = true
						closestT = t
						closest = si
						r.TMax = t
					}
				}
				if stackPtr == 0 {
					break
				}
				stackPtr--
				current = stack[stackPtr]
			} else {
				if dirIsNeg[node.axis] {
					stack[stackPtr] = current + 1
					stackPtr++
					current = node.secondChild
				} else {
					stack[stackPtr] = node.secondChild
					stackPtr++
					current = current + 1
				}
			}
		} else {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			current = stack[stackPtr]
		}
	}

	return closest, closestT, hitAnything
}

// IntersectP is a cheaper existence test for shadow rays: stops at the
// first hit found, in any order.
func (b *BVH) IntersectP(ray core.Ray) bool {
	if len(b.nodes) == 0 {
		return false
	}

	invDir := core.NewVector3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)
	dirIsNeg := [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0}

	var stack [traversalStackDepth]int
	stackPtr := 0
	current := 0

	for {
		node := &b.nodes[current]
		if node.bounds.IntersectP(ray, 0, ray.TMax, invDir, dirIsNeg) {
			if node.numPrims > 0 {
				for i := 0; i < node.numPrims; i++ {
					if b.orderedPrims[node.primOffset+i].IntersectP(ray) {
						return true
					}
				}
				if stackPtr == 0 {
					break
				}
				stackPtr--
				current = stack[stackPtr]
			} else {
				stack[stackPtr] = node.secondChild
				stackPtr++
				current = current + 1
			}
		} else {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			current = stack[stackPtr]
		}
	}
	return false
}
