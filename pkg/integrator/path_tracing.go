package integrator

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// ShadowAcneEpsilon is the minimum t accepted for any hit, so scattered rays
// do not re-hit the surface they leave from.
const ShadowAcneEpsilon = 0.001

var (
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed depth cutoff
type PathTracingIntegrator struct {
	MaxDepth int
	// Background is returned for escaping rays; nil selects the sky gradient
	Background *core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, background *core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, pt.MaxDepth, world, sampler)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.background(ray)
	}

	colorEmitted := material.Emitted(hit.Material, hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, depth-1, world, sampler))
	return colorEmitted.Add(colorScattered)
}

// background returns the constant background or a white-to-blue gradient by ray height
func (pt *PathTracingIntegrator) background(ray core.Ray) core.Vec3 {
	if pt.Background != nil {
		return *pt.Background
	}
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Lerp(skyTop, t)
}
