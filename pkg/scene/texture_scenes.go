package scene

import (
	"errors"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/loaders"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// ErrNoTexture is wrapped in an AssetLoadError when a textured scene has no image path
var ErrNoTexture = errors.New("no texture image given")

func init() {
	register("two-spheres", "Checkered Spheres", "Two large spheres sharing a checker texture", func(opts Options) (*Scene, error) {
		return NewTwoSpheresScene(), nil
	})
	register("perlin", "Perlin Spheres", "Ground and sphere with a turbulent noise texture", func(opts Options) (*Scene, error) {
		return NewPerlinSpheresScene(opts.Seed), nil
	})
	register("earth", "Earth", "Image-textured globe, needs a texture path", func(opts Options) (*Scene, error) {
		return NewEarthScene(opts.TexturePath)
	})
}

// orbitCamera is the shared view of the texture scenes
func orbitCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		LookFrom:        renderer.Point(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            20,
		FocusDistance:   10,
	}
}

// NewTwoSpheresScene creates two spheres touching at the origin with a shared checker material
func NewTwoSpheresScene() *Scene {
	checker := material.NewSolidCheckerTexture(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	checkerMaterial := material.NewTexturedLambertian(checker)

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checkerMaterial),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checkerMaterial),
	}
	return New("two-spheres", orbitCamera(), objects)
}

// perlinSpheres returns the noise-textured ground and sphere shared by the perlin and light scenes
func perlinSpheres(seed int64) []geometry.Hittable {
	noiseMaterial := material.NewTexturedLambertian(material.NewNoiseTexture(4, seed))
	return []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, noiseMaterial),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, noiseMaterial),
	}
}

// NewPerlinSpheresScene creates the two perlin spheres scene
func NewPerlinSpheresScene(seed int64) *Scene {
	return New("perlin", orbitCamera(), perlinSpheres(seed))
}

// NewEarthScene creates a globe textured with the image at texturePath.
// A missing or unreadable image fails here, before any rendering starts.
func NewEarthScene(texturePath string) (*Scene, error) {
	if texturePath == "" {
		return nil, &loaders.AssetLoadError{Path: texturePath, Err: ErrNoTexture}
	}
	img, err := loaders.LoadImage(texturePath)
	if err != nil {
		return nil, err
	}

	config := orbitCamera()
	config.LookFrom = renderer.Point(0, 0, 12)

	surface := material.NewTexturedLambertian(material.NewImageTexture(img))
	s := New("earth", config, []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, surface),
	})
	s.Assets = []string{texturePath}
	return s, nil
}
