package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hitFn       func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func (m MockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

func neverHit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return nil, false
}

// randomScene builds a mix of spheres, quads and boxes inside [-10, 10]^3
func randomScene(random *rand.Rand, n int) []Hittable {
	point := func() core.Vec3 {
		return core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	}
	shapes := make([]Hittable, 0, n)
	for i := 0; i < n; i++ {
		switch i % 4 {
		case 0, 1:
			shapes = append(shapes, NewSphere(point(), 0.2+random.Float64(), DummyMaterial{}))
		case 2:
			u := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
			v := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
			shapes = append(shapes, NewQuad(point(), u.Multiply(2), v.Multiply(2), DummyMaterial{}))
		default:
			a := point()
			shapes = append(shapes, NewRotateY(NewQuadBox(a, a.Add(core.NewVec3(1, 2, 1)), DummyMaterial{}), random.Float64()*360))
		}
	}
	return shapes
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 2, 3, 7, 50, 300} {
		shapes := randomScene(random, n)
		bvh := NewBVH(shapes)
		list := NewHittableList(shapes...)

		hits := 0
		for i := 0; i < 2000; i++ {
			origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
			dir := core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
			ray := core.NewRay(origin, dir)

			want, wantHit := list.Hit(ray, 0.001, math.Inf(1))
			got, gotHit := bvh.Hit(ray, 0.001, math.Inf(1))

			require.Equal(t, wantHit, gotHit, "n=%d ray %d: hit mismatch", n, i)
			if wantHit {
				hits++
				require.InDelta(t, want.T, got.T, 1e-9, "n=%d ray %d: t mismatch", n, i)
				require.True(t, vecNear(want.Point, got.Point, 1e-6))
			}
		}
		if n >= 50 {
			assert.Greater(t, hits, 0, "battery should include hits")
		}
	}
}

func TestBVH_AxisAlignedRays(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	shapes := randomScene(random, 100)
	bvh := NewBVH(shapes)
	list := NewHittableList(shapes...)

	axes := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
		ray := core.NewRay(origin, axes[i%len(axes)])

		want, wantHit := list.Hit(ray, 0.001, math.Inf(1))
		got, gotHit := bvh.Hit(ray, 0.001, math.Inf(1))
		require.Equal(t, wantHit, gotHit)
		if wantHit {
			require.InDelta(t, want.T, got.T, 1e-9)
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	_, isHit := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	assert.False(t, isHit)
	assert.True(t, bvh.BoundingBox().IsEmpty())
	assert.Equal(t, BVHStats{}, bvh.Stats())
}

func TestBVH_SingleShapeIsLeaf(t *testing.T) {
	bvh := NewBVH([]Hittable{NewSphere(core.NewVec3(0, 0, -3), 1, DummyMaterial{})})
	assert.Equal(t, BVHStats{TotalNodes: 1, LeafNodes: 1, MaxDepth: 1}, bvh.Stats())

	hit, isHit := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	require.True(t, isHit)
	assert.InDelta(t, 2.0, hit.T, 1e-9)
}

func TestBVH_OneShapePerLeaf(t *testing.T) {
	shapes := randomScene(rand.New(rand.NewSource(3)), 64)
	stats := NewBVH(shapes).Stats()

	assert.Equal(t, 64, stats.LeafNodes)
	assert.Equal(t, 2*64-1, stats.TotalNodes)
}

func TestBVH_StoredBoxesMatchSubtrees(t *testing.T) {
	shapes := randomScene(rand.New(rand.NewSource(11)), 40)
	bvh := NewBVH(shapes)

	var subtreeBox func(node int) core.AABB
	subtreeBox = func(node int) core.AABB {
		n := bvh.nodes[node]
		if n.leaf {
			return bvh.shapes[n.shapeIndex].BoundingBox()
		}
		left := subtreeBox(n.left)
		right := subtreeBox(n.right)
		if diff := cmp.Diff(left, n.leftBox); diff != "" {
			t.Errorf("node %d left box mismatch (-subtree +stored):\n%s", node, diff)
		}
		if diff := cmp.Diff(right, n.rightBox); diff != "" {
			t.Errorf("node %d right box mismatch (-subtree +stored):\n%s", node, diff)
		}
		return left.Merge(right)
	}

	assert.Equal(t, bvh.BoundingBox(), subtreeBox(0))
}

func TestBVH_DeterministicBuild(t *testing.T) {
	shapes := randomScene(rand.New(rand.NewSource(5)), 120)
	a := NewBVH(shapes)
	b := NewBVH(shapes)

	if diff := cmp.Diff(a.nodes, b.nodes, cmp.AllowUnexported(bvhNode{})); diff != "" {
		t.Errorf("BVH builds differ (-first +second):\n%s", diff)
	}
}

func TestBVH_IdenticalCentroids(t *testing.T) {
	// Coincident centroids take the split-in-half path
	shapes := make([]Hittable, 9)
	for i := range shapes {
		shapes[i] = NewSphere(core.NewVec3(0, 0, -5), 1+float64(i)*0.1, DummyMaterial{})
	}
	bvh := NewBVH(shapes)
	stats := bvh.Stats()

	assert.Equal(t, 9, stats.LeafNodes)
	assert.LessOrEqual(t, stats.MaxDepth, 5, "halving keeps the tree balanced")

	hit, isHit := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	require.True(t, isHit)
	// Largest radius is 1.8
	assert.InDelta(t, 5-1.8, hit.T, 1e-9)
}

func TestBVH_RightChildCannotReturnFartherHit(t *testing.T) {
	// The near shape lands in the left child; its hit at t=2 must narrow the right test
	var farQueries []float64
	near := MockShape{
		boundingBox: core.NewAABB(core.NewVec3(1, -1, -1), core.NewVec3(3, 1, 1)),
		hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
			return &material.HitRecord{T: 2}, 2 >= tMin && 2 < tMax
		},
	}
	far := MockShape{
		boundingBox: core.NewAABB(core.NewVec3(10, -1, -1), core.NewVec3(30, 1, 1)),
		hitFn: func(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
			farQueries = append(farQueries, tMax)
			return &material.HitRecord{T: 20}, 20 >= tMin && 20 < tMax
		},
	}

	bvh := NewBVH([]Hittable{near, far})
	hit, isHit := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0.001, math.Inf(1))
	require.True(t, isHit)
	assert.Equal(t, 2.0, hit.T)
	assert.Empty(t, farQueries, "far box lies beyond the narrowed interval")
}

func TestBVH_MissesWhenBoxesMiss(t *testing.T) {
	shapes := []Hittable{
		MockShape{boundingBox: core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)), hitFn: neverHit},
		MockShape{boundingBox: core.NewAABB(core.NewVec3(5, 0, 0), core.NewVec3(6, 1, 1)), hitFn: neverHit},
	}
	bvh := NewBVH(shapes)

	_, isHit := bvh.Hit(core.NewRay(core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	assert.False(t, isHit)
	assert.Equal(t, 2, bvh.Len())
}

// unitCubesAlongX returns unit cubes centered on the x axis at xs
func unitCubesAlongX(xs ...float64) []core.AABB {
	boxes := make([]core.AABB, len(xs))
	for i, x := range xs {
		boxes[i] = core.NewAABB(core.NewVec3(x-0.5, -0.5, -0.5), core.NewVec3(x+0.5, 0.5, 0.5))
	}
	return boxes
}

func partitionBoxes(boxes []core.AABB) (left, right []int) {
	b := &bvhBuilder{boxes: boxes}
	bounds, centroids := core.EmptyAABB(), core.EmptyAABB()
	indices := make([]int, len(boxes))
	for i, box := range boxes {
		bounds = bounds.Merge(box)
		centroids = centroids.Grow(box.Center())
		indices[i] = i
	}
	return b.partition(indices, bounds, centroids)
}

func TestBVH_PartitionPicksCheapestSplit(t *testing.T) {
	tests := []struct {
		name  string
		xs    []float64
		left  []int
		right []int
	}{
		{
			// One cube per bucket; splitting down the middle costs 132 against 148 and 196
			name:  "evenly spaced row",
			xs:    []float64{0, 2, 4, 6, 8, 10},
			left:  []int{0, 1, 2},
			right: []int{3, 4, 5},
		},
		{
			name:  "far cube isolated",
			xs:    []float64{0, 0.1, 0.2, 10},
			left:  []int{0, 1, 2},
			right: []int{3},
		},
		{
			// Splits after bucket 0 and after bucket 2 mirror each other; the first one wins
			name:  "mirror tie goes to lowest split",
			xs:    []float64{0, 5, 10},
			left:  []int{0},
			right: []int{1, 2},
		},
		{
			// The cube on the upper centroid edge shares the last bucket
			name:  "upper edge in last bucket",
			xs:    []float64{0, 9, 10},
			left:  []int{0},
			right: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := partitionBoxes(unitCubesAlongX(tt.xs...))
			assert.Equal(t, tt.left, left)
			assert.Equal(t, tt.right, right)
		})
	}
}

func TestBVH_RootSplitMatchesCheapestPartition(t *testing.T) {
	var shapes []Hittable
	for _, box := range unitCubesAlongX(0, 2, 4, 6, 8, 10) {
		shapes = append(shapes, MockShape{boundingBox: box, hitFn: neverHit})
	}
	bvh := NewBVH(shapes)

	root := bvh.nodes[0]
	require.False(t, root.leaf)
	wantLeft := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(4.5, 0.5, 0.5))
	wantRight := core.NewAABB(core.NewVec3(5.5, -0.5, -0.5), core.NewVec3(10.5, 0.5, 0.5))
	if diff := cmp.Diff(wantLeft, root.leftBox); diff != "" {
		t.Errorf("root left box mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRight, root.rightBox); diff != "" {
		t.Errorf("root right box mismatch (-want +got):\n%s", diff)
	}
}
