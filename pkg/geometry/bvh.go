package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

const (
	// bucketCount is the number of SAH bins along the split axis
	bucketCount = 6
	// bucketBias keeps centroids at the upper edge out of a seventh bucket
	bucketBias = 0.01
	// machineEpsilon below which all centroids are treated as coincident
	machineEpsilon = 0x1p-52
)

// bvhNode is either a leaf referencing one shape or an internal node
// referencing two children in the same node slice.
type bvhNode struct {
	leaf       bool
	shapeIndex int

	left, right       int
	leftBox, rightBox core.AABB
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Nodes live in a flat slice; the root is node 0.
type BVH struct {
	nodes  []bvhNode
	shapes []Hittable
	bbox   core.AABB
}

// NewBVH constructs a BVH from a slice of shapes using binned SAH splits.
// The input slice is not modified. Construction is deterministic.
func NewBVH(shapes []Hittable) *BVH {
	shapesCopy := make([]Hittable, len(shapes))
	copy(shapesCopy, shapes)

	bvh := &BVH{shapes: shapesCopy, bbox: core.EmptyAABB()}
	if len(shapesCopy) == 0 {
		return bvh
	}

	boxes := make([]core.AABB, len(shapesCopy))
	for i, shape := range shapesCopy {
		boxes[i] = shape.BoundingBox()
		bvh.bbox = bvh.bbox.Merge(boxes[i])
	}

	indices := make([]int, len(shapesCopy))
	for i := range indices {
		indices[i] = i
	}

	b := &bvhBuilder{boxes: boxes, nodes: make([]bvhNode, 0, 2*len(shapesCopy)-1)}
	b.build(indices)
	bvh.nodes = b.nodes

	return bvh
}

type bvhBuilder struct {
	boxes []core.AABB
	nodes []bvhNode
}

// build emits the subtree for indices and returns its node index and box
func (b *bvhBuilder) build(indices []int) (int, core.AABB) {
	if len(indices) == 1 {
		b.nodes = append(b.nodes, bvhNode{leaf: true, shapeIndex: indices[0]})
		return len(b.nodes) - 1, b.boxes[indices[0]]
	}

	bounds := core.EmptyAABB()
	centroidBounds := core.EmptyAABB()
	for _, i := range indices {
		bounds = bounds.Merge(b.boxes[i])
		centroidBounds = centroidBounds.Grow(b.boxes[i].Center())
	}

	// Placeholder, patched once both children exist
	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{})

	leftIndices, rightIndices := b.partition(indices, bounds, centroidBounds)

	left, leftBox := b.build(leftIndices)
	right, rightBox := b.build(rightIndices)

	b.nodes[nodeIndex] = bvhNode{
		left:     left,
		right:    right,
		leftBox:  leftBox,
		rightBox: rightBox,
	}
	return nodeIndex, bounds
}

// partition splits indices into two non-empty subsets
func (b *bvhBuilder) partition(indices []int, bounds, centroidBounds core.AABB) ([]int, []int) {
	axis := centroidBounds.LargestAxis()
	axisMin := centroidBounds.Min.Axis(axis)
	axisSize := centroidBounds.Max.Axis(axis) - axisMin

	// All centroids coincide: any split is as good as another
	if axisSize < machineEpsilon {
		mid := len(indices) / 2
		return append([]int(nil), indices[:mid]...), append([]int(nil), indices[mid:]...)
	}

	var buckets [bucketCount]struct {
		indices []int
		bounds  core.AABB
	}
	for i := range buckets {
		buckets[i].bounds = core.EmptyAABB()
	}

	for _, i := range indices {
		rel := (b.boxes[i].Center().Axis(axis) - axisMin) / axisSize
		bucket := 0
		if rel == rel { // NaN stays in the first bucket
			bucket = int(rel*bucketCount - bucketBias)
		}
		bucket = max(0, min(bucketCount-1, bucket))
		buckets[bucket].indices = append(buckets[bucket].indices, i)
		buckets[bucket].bounds = buckets[bucket].bounds.Merge(b.boxes[i])
	}

	// Cost of splitting after bucket s; the first minimum wins ties
	totalArea := bounds.SurfaceArea()
	bestSplit := 0
	bestCost := 0.0
	for s := 0; s < bucketCount-1; s++ {
		leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
		leftCount, rightCount := 0, 0
		for i := 0; i <= s; i++ {
			leftBox = leftBox.Merge(buckets[i].bounds)
			leftCount += len(buckets[i].indices)
		}
		for i := s + 1; i < bucketCount; i++ {
			rightBox = rightBox.Merge(buckets[i].bounds)
			rightCount += len(buckets[i].indices)
		}

		cost := float64(leftCount)*leftBox.SurfaceArea() + float64(rightCount)*rightBox.SurfaceArea()
		if totalArea > 0 {
			cost /= totalArea
		}
		if s == 0 || cost < bestCost {
			bestSplit = s
			bestCost = cost
		}
	}

	var left, right []int
	for i := 0; i <= bestSplit; i++ {
		left = append(left, buckets[i].indices...)
	}
	for i := bestSplit + 1; i < bucketCount; i++ {
		right = append(right, buckets[i].indices...)
	}

	// Rounding can in principle leave one side empty
	if len(left) == 0 || len(right) == 0 {
		mid := len(indices) / 2
		return append([]int(nil), indices[:mid]...), append([]int(nil), indices[mid:]...)
	}
	return left, right
}

// Hit finds the closest intersection in [tMin, tMax)
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}
	hit := bvh.traverse(0, ray, tMin, tMax)
	return hit, hit != nil
}

func (bvh *BVH) traverse(nodeIndex int, ray core.Ray, tMin, tMax float64) *material.HitRecord {
	node := &bvh.nodes[nodeIndex]
	if node.leaf {
		if hit, isHit := bvh.shapes[node.shapeIndex].Hit(ray, tMin, tMax); isHit {
			return hit
		}
		return nil
	}

	var leftHit *material.HitRecord
	if node.leftBox.Hit(ray, tMin, tMax) {
		leftHit = bvh.traverse(node.left, ray, tMin, tMax)
	}

	// The right subtree only matters if it can beat the left hit
	closest := tMax
	if leftHit != nil {
		closest = leftHit.T
	}

	var rightHit *material.HitRecord
	if node.rightBox.Hit(ray, tMin, closest) {
		rightHit = bvh.traverse(node.right, ray, tMin, closest)
	}

	if rightHit != nil {
		return rightHit
	}
	return leftHit
}

// BoundingBox returns the merged box of all shapes, empty for an empty BVH
func (bvh *BVH) BoundingBox() core.AABB {
	return bvh.bbox
}

// Len returns the number of shapes in the hierarchy
func (bvh *BVH) Len() int {
	return len(bvh.shapes)
}

// BVHStats summarizes the shape of a hierarchy
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
}

// Stats walks the tree and reports its size and depth
func (bvh *BVH) Stats() BVHStats {
	var stats BVHStats
	if len(bvh.nodes) == 0 {
		return stats
	}
	bvh.collectStats(0, 1, &stats)
	return stats
}

func (bvh *BVH) collectStats(nodeIndex, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	node := &bvh.nodes[nodeIndex]
	if node.leaf {
		stats.LeafNodes++
		return
	}
	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}
