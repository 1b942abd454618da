package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

func init() {
	register("final", "Random Spheres", "Grid of small random spheres around three large ones", func(opts Options) (*Scene, error) {
		return NewFinalScene(opts.Seed), nil
	})
}

// NewFinalScene creates the field of random small spheres. The layout depends only on seed.
func NewFinalScene(seed int64) *Scene {
	config := renderer.CameraConfig{
		Width:           1200,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		LookFrom:        renderer.Point(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            20,
		FocusDistance:   10,
	}

	random := rand.New(rand.NewSource(seed))
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	glass := material.NewDielectric(1.5)
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	// Keep clear of the metal sphere at (4, 1, 0)
	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).LengthSquared() <= 0.9*0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(randomColor(0, 1).MultiplyVec(randomColor(0, 1)))
			case chooseMat < 0.95:
				mat = material.NewMetal(randomColor(0.5, 1), 0.5*random.Float64())
			default:
				mat = glass
			}
			objects = append(objects, geometry.NewSphere(center, 0.2, mat))
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return New("final", config, objects)
}
