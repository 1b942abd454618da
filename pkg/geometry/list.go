package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// HittableList intersects a ray against every object in turn
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB()}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends an object and grows the cached bounding box
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
	l.bbox = l.bbox.Merge(object.BoundingBox())
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the merged box of all objects, empty for an empty list
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}
