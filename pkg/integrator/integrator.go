package integrator

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear radiance arriving along ray
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}
