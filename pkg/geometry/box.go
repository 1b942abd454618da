package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// QuadBox is a closed axis-aligned box made up of 6 quads
type QuadBox struct {
	Min, Max core.Vec3
	faces    [6]*Quad
	bbox     core.AABB
}

// NewQuadBox creates the box spanned by two opposite corners given in any order
func NewQuadBox(a, b core.Vec3, mat material.Material) *QuadBox {
	lo := a.Min(b)
	hi := a.Max(b)

	dx := core.NewVec3(hi.X-lo.X, 0, 0)
	dy := core.NewVec3(0, hi.Y-lo.Y, 0)
	dz := core.NewVec3(0, 0, hi.Z-lo.Z)

	box := &QuadBox{Min: lo, Max: hi, bbox: core.NewAABB(lo, hi).Pad()}
	box.faces = [6]*Quad{
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, mat),          // front
		NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, mat), // right
		NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, mat), // back
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dz, dy, mat),          // left
		NewQuad(core.NewVec3(lo.X, hi.Y, hi.Z), dx, dz.Negate(), mat), // top
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dx, dz, mat),          // bottom
	}
	return box
}

// Hit returns the nearest face hit
func (b *QuadBox) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the padded bounding box of the box
func (b *QuadBox) BoundingBox() core.AABB {
	return b.bbox
}

// Faces returns the six quads in front, right, back, left, top, bottom order
func (b *QuadBox) Faces() [6]*Quad {
	return b.faces
}
