package core

import (
	"math"
)

// padDelta is the minimum extent per axis after Pad
const padDelta = 1e-4

// AABB represents an axis-aligned bounding box.
// The zero value is not empty; use EmptyAABB for the merge identity.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates the box spanned by two corners given in any order
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// EmptyAABB returns the identity element for Merge (min=+Inf, max=-Inf)
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates the smallest box containing all the points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Grow(p)
	}
	return box
}

// IsEmpty reports whether the box contains no points (min > max on some axis)
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Merge returns the smallest box containing both boxes
func (b AABB) Merge(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Grow returns the smallest box containing b and the point
func (b AABB) Grow(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Pad inflates every axis by a small epsilon so planar shapes still pass the slab test
func (b AABB) Pad() AABB {
	delta := NewVec3(padDelta, padDelta, padDelta)
	return AABB{Min: b.Min.Subtract(delta), Max: b.Max.Add(delta)}
}

// Contains reports whether p lies inside the box, boundary included
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Hit tests if a ray intersects the box within [tMin, tMax) using the slab method
func (b AABB) Hit(ray Ray, tMin, tMax float64) bool {
	start, end := tMin, tMax
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		lo := b.Min.Axis(axis)
		hi := b.Max.Axis(axis)
		invD := 1.0 / ray.Direction.Axis(axis)

		// Parallel to the slab: 0*Inf would be NaN, so decide from the origin alone
		if math.IsInf(invD, 0) {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > start {
			start = t0
		}
		if t1 < end {
			end = t1
		}
		if end <= start {
			return false
		}
	}
	return end > start
}

// Size returns the extent of the box along each axis
func (b AABB) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// Center returns the centroid of the box
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// SurfaceArea returns the total area of the six faces, 0 for an empty box
func (b AABB) SurfaceArea() float64 {
	if b.IsEmpty() {
		return 0
	}
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// LargestAxis returns the axis with the largest extent; ties go to the lower axis index
func (b AABB) LargestAxis() int {
	s := b.Size()
	axis := 0
	if s.Y > s.Axis(axis) {
		axis = 1
	}
	if s.Z > s.Axis(axis) {
		axis = 2
	}
	return axis
}
