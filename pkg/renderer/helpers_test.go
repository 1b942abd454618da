package renderer

import (
	"fmt"
	"sync"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// centerSampler always samples the middle of the unit square
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// recordingLogger captures formatted log lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// twoSpheres is the ground plus center sphere regression world
func twoSpheres() geometry.Hittable {
	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	return geometry.NewBVH([]geometry.Hittable{ground, center})
}

func twoSpheresCamera() CameraConfig {
	return CameraConfig{
		Width:           16,
		AspectRatio:     1,
		SamplesPerPixel: 2,
		MaxDepth:        5,
		LookFrom:        Point(0, 0, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		VFov:            90,
		FocusDistance:   1,
	}
}
