package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Hittable is anything a ray can be intersected with.
// Hit returns the nearest intersection with t in [tMin, tMax).
// BoundingBox must conservatively enclose every possible hit point.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
