package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Translate moves the wrapped object by Offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	box := object.BoundingBox()
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   core.AABB{Min: box.Min.Add(offset), Max: box.Max.Add(offset)},
	}
}

// Hit moves the ray into object space, intersects, then moves the hit back
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	offsetRay := core.NewRay(ray.Origin.Subtract(tr.Offset), ray.Direction)

	hit, isHit := tr.Object.Hit(offsetRay, tMin, tMax)
	if !isHit {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the translated box of the wrapped object
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}

// RotateY rotates the wrapped object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about +Y (counterclockwise looking down)
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box := object.BoundingBox()
	if box.IsEmpty() {
		r.bbox = box
		return r
	}

	// World box is the extent of all 8 rotated corners
	r.bbox = core.EmptyAABB()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					pick(i, box.Min.X, box.Max.X),
					pick(j, box.Min.Y, box.Max.Y),
					pick(k, box.Min.Z, box.Max.Z),
				)
				r.bbox = r.bbox.Grow(r.toWorld(corner))
			}
		}
	}
	return r
}

func pick(i int, lo, hi float64) float64 {
	if i == 0 {
		return lo
	}
	return hi
}

// toObject rotates a world-space vector by -theta
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector by +theta
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, then rotates the hit back
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	rotated := core.NewRay(r.toObject(ray.Origin), r.toObject(ray.Direction))

	hit, isHit := r.Object.Hit(rotated, tMin, tMax)
	if !isHit {
		return nil, false
	}

	// Rotation preserves t and front/back orientation
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the world-space box enclosing the rotated object
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
