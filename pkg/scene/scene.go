package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned (wrapped with the requested name) for unregistered scenes
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Camera renderer.CameraConfig
	World  geometry.Hittable // Root of the hierarchy, usually a BVH
	// Assets lists the files the scene was built from, so callers can watch them
	Assets []string
}

// Options tunes how a scene is built
type Options struct {
	// TexturePath is the image used by scenes with an image texture
	TexturePath string
	// Seed drives procedural content (noise textures, random sphere fields)
	Seed int64
}

// New creates a scene whose world is a BVH over objects
func New(name string, camera renderer.CameraConfig, objects []geometry.Hittable) *Scene {
	return &Scene{
		Name:   name,
		Camera: camera,
		World:  geometry.NewBVH(objects),
	}
}

// NewRaytracer creates a raytracer for the scene with its own camera settings
func (s *Scene) NewRaytracer() *renderer.Raytracer {
	return renderer.NewRaytracer(s.World, s.Camera)
}

// PrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) PrimitiveCount() int {
	if bvh, ok := s.World.(*geometry.BVH); ok {
		return bvh.Len()
	}
	return 1
}

// Builder constructs a built-in scene
type Builder func(opts Options) (*Scene, error)

type registration struct {
	info  SceneInfo
	build Builder
}

var registry = map[string]registration{}

// register adds a built-in scene; called from init in the scene files
func register(name, displayName, description string, build Builder) {
	registry[name] = registration{
		info: SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: displayName,
			Description: description,
			Group:       builtInGroup,
			Type:        "builtin",
		},
		build: build,
	}
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named built-in scene
func Build(name string, opts Options) (*Scene, error) {
	reg, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := reg.build(opts)
	if err != nil {
		return nil, fmt.Errorf("while building scene %q: %w", name, err)
	}
	return s, nil
}
