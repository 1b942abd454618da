package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V normalized)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = d
	W        core.Vec3         // n / (n·n) with n = U × V, for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors.
// Parallel or zero edges are accepted; such a quad is never hit.
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	// Both diagonals, so skewed parallelograms are fully enclosed
	bbox := core.NewAABB(corner, corner.Add(u).Add(v)).
		Merge(core.NewAABB(corner.Add(u), corner.Add(v))).
		Pad()

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
		bbox:     bbox,
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Parallel to the plane, or a degenerate quad with a zero normal
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t >= tMax {
		return nil, false
	}

	hitPoint := ray.At(t)

	// Planar coordinates of the hit point in the (U, V) basis
	planarHit := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planarHit.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planarHit))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

// BoundingBox returns the padded bounding box of the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
