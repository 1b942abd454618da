package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestTranslate_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	moved := NewTranslate(sphere, core.NewVec3(5, 0, 0))

	hit, isHit := moved.Hit(core.NewRay(core.NewVec3(5, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	require.True(t, isHit)
	assert.InDelta(t, 4.0, hit.T, 1e-9)
	assert.True(t, vecNear(hit.Point, core.NewVec3(5, 0, 1), 1e-9))
	assert.True(t, vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-9))

	_, isHit = moved.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	assert.False(t, isHit, "original location is empty")

	assert.Equal(t, core.NewAABB(core.NewVec3(4, -1, -1), core.NewVec3(6, 1, 1)), moved.BoundingBox())
}

func TestRotateY_Hit(t *testing.T) {
	// A thin slab along +X, rotated 90 degrees, lies along -Z
	slab := NewQuadBox(core.NewVec3(0, -0.5, -0.5), core.NewVec3(4, 0.5, 0.5), DummyMaterial{})
	rotated := NewRotateY(slab, 90)

	hit, isHit := rotated.Hit(core.NewRay(core.NewVec3(0, 5, -3), core.NewVec3(0, -1, 0)), 0.001, math.Inf(1))
	require.True(t, isHit)
	assert.InDelta(t, 4.5, hit.T, 1e-9)
	assert.True(t, vecNear(hit.Point, core.NewVec3(0, 0.5, -3), 1e-9), "got %v", hit.Point)
	assert.True(t, vecNear(hit.Normal, core.NewVec3(0, 1, 0), 1e-9))

	// Side face normal is rotated too: the +Z face of the slab now faces +X
	hit, isHit = rotated.Hit(core.NewRay(core.NewVec3(5, 0, -2), core.NewVec3(-1, 0, 0)), 0.001, math.Inf(1))
	require.True(t, isHit)
	assert.True(t, vecNear(hit.Normal, core.NewVec3(1, 0, 0), 1e-9), "got %v", hit.Normal)

	_, isHit = rotated.Hit(core.NewRay(core.NewVec3(2, 5, 0), core.NewVec3(0, -1, 0)), 0.001, math.Inf(1))
	assert.False(t, isHit, "unrotated location is empty")
}

func TestRotateY_BoundingBox(t *testing.T) {
	box := NewQuadBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), DummyMaterial{})
	rotated := NewRotateY(box, 45)
	bbox := rotated.BoundingBox()

	half := math.Sqrt2 / 2
	assert.InDelta(t, 0, bbox.Min.X, 1e-3)
	assert.InDelta(t, 2*half, bbox.Max.X, 1e-3)
	assert.InDelta(t, -half, bbox.Min.Z, 1e-3)
	assert.InDelta(t, half, bbox.Max.Z, 1e-3)

	// Every sampled surface hit lies inside the rotated box
	sampler := core.NewSeededSampler(9)
	for i := 0; i < 200; i++ {
		origin := core.NewVec3(sampler.Get1D()*4-2, 5, sampler.Get1D()*4-2)
		if hit, isHit := rotated.Hit(core.NewRay(origin, core.NewVec3(0, -1, 0)), 0.001, math.Inf(1)); isHit {
			assert.True(t, bbox.Contains(hit.Point), "hit %v outside %v", hit.Point, bbox)
		}
	}
}
