package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

func init() {
	register("cornell", "Cornell Box", "Cornell box with two rotated boxes and a ceiling light", func(opts Options) (*Scene, error) {
		return NewCornellScene(), nil
	})
	register("simple-light", "Simple Light", "Perlin spheres lit by a quad and a sphere light", func(opts Options) (*Scene, error) {
		return NewSimpleLightScene(opts.Seed), nil
	})
}

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene() *Scene {
	black := core.NewVec3(0, 0, 0)
	config := renderer.CameraConfig{
		Width:           600,
		AspectRatio:     1.0,
		SamplesPerPixel: 200,
		MaxDepth:        50,
		LookFrom:        renderer.Point(278, 278, -800), // Outside the open side of the box
		LookAt:          core.NewVec3(278, 278, 0),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            40,
		FocusDistance:   10,
		Background:      &black, // Enclosed: only the light contributes
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	// Standard 555 unit box
	const size = 555.0
	objects := []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), red),
		geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), light),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white),
		geometry.NewQuad(core.NewVec3(size, size, size), core.NewVec3(-size, 0, 0), core.NewVec3(0, 0, -size), white),
		geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white),
	}

	tall := geometry.NewQuadBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295)))

	short := geometry.NewQuadBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65)))

	return New("cornell", config, objects)
}

// NewSimpleLightScene lights the perlin spheres with a quad and a sphere light on a black background
func NewSimpleLightScene(seed int64) *Scene {
	black := core.NewVec3(0, 0, 0)
	config := renderer.CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		LookFrom:        renderer.Point(26, 3, 6),
		LookAt:          core.NewVec3(0, 2, 0),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            20,
		FocusDistance:   10,
		Background:      &black,
	}

	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	objects := perlinSpheres(seed)
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)
	return New("simple-light", config, objects)
}
