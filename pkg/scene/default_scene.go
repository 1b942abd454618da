package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

func init() {
	register("default", "Default Scene", "Ground and center sphere under a sky gradient", func(opts Options) (*Scene, error) {
		return NewDefaultScene(), nil
	})
	register("quads", "Quads", "Five colored quads facing the camera", func(opts Options) (*Scene, error) {
		return NewQuadsScene(), nil
	})
}

// NewDefaultScene creates the two sphere scene: a huge ground sphere and a small one resting on it
func NewDefaultScene() *Scene {
	config := renderer.CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		LookFrom:        renderer.Point(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            90,
		FocusDistance:   1,
	}

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
	}
	return New("default", config, objects)
}

// NewQuadsScene creates five quads boxing in the view from left, back, right, top and bottom
func NewQuadsScene() *Scene {
	config := renderer.CameraConfig{
		Width:           400,
		AspectRatio:     1.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		LookFrom:        renderer.Point(0, 0, 9),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            80,
		FocusDistance:   10,
	}

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	objects := []geometry.Hittable{
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	}
	return New("quads", config, objects)
}
