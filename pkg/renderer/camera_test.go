package renderer

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestCameraConfig_WithDefaults(t *testing.T) {
	background := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		config   CameraConfig
		expected CameraConfig
	}{
		{
			name:   "all unset",
			config: CameraConfig{},
			expected: CameraConfig{
				Width:           400,
				AspectRatio:     16.0 / 9.0,
				SamplesPerPixel: 100,
				MaxDepth:        50,
				LookFrom:        Point(0, 0, -1),
				LookAt:          core.NewVec3(0, 0, 0),
				Up:              core.NewVec3(0, 1, 0),
				VFov:            20,
				FocusDistance:   10,
			},
		},
		{
			name: "explicit values kept",
			config: CameraConfig{
				Width:           600,
				AspectRatio:     1,
				SamplesPerPixel: 200,
				MaxDepth:        10,
				LookFrom:        Point(278, 278, -800),
				LookAt:          core.NewVec3(278, 278, 0),
				Up:              core.NewVec3(0, 0, 1),
				VFov:            40,
				DefocusAngle:    0.6,
				FocusDistance:   3.4,
				Background:      &background,
			},
			expected: CameraConfig{
				Width:           600,
				AspectRatio:     1,
				SamplesPerPixel: 200,
				MaxDepth:        10,
				LookFrom:        Point(278, 278, -800),
				LookAt:          core.NewVec3(278, 278, 0),
				Up:              core.NewVec3(0, 0, 1),
				VFov:            40,
				DefocusAngle:    0.6,
				FocusDistance:   3.4,
				Background:      &background,
			},
		},
		{
			name:   "target set without eye",
			config: CameraConfig{LookAt: core.NewVec3(1, 0, 0)},
			expected: CameraConfig{
				Width:           400,
				AspectRatio:     16.0 / 9.0,
				SamplesPerPixel: 100,
				MaxDepth:        50,
				LookFrom:        Point(0, 0, -1),
				LookAt:          core.NewVec3(1, 0, 0),
				Up:              core.NewVec3(0, 1, 0),
				VFov:            20,
				FocusDistance:   10,
			},
		},
		{
			name:   "explicit origin eye",
			config: CameraConfig{LookFrom: Point(0, 0, 0), LookAt: core.NewVec3(0, 0, -1)},
			expected: CameraConfig{
				Width:           400,
				AspectRatio:     16.0 / 9.0,
				SamplesPerPixel: 100,
				MaxDepth:        50,
				LookFrom:        Point(0, 0, 0),
				LookAt:          core.NewVec3(0, 0, -1),
				Up:              core.NewVec3(0, 1, 0),
				VFov:            20,
				FocusDistance:   10,
			},
		},
		{
			name:   "coincident eye and target",
			config: CameraConfig{LookFrom: Point(1, 2, 3), LookAt: core.NewVec3(1, 2, 3)},
			expected: CameraConfig{
				Width:           400,
				AspectRatio:     16.0 / 9.0,
				SamplesPerPixel: 100,
				MaxDepth:        50,
				LookFrom:        Point(1, 2, 2),
				LookAt:          core.NewVec3(1, 2, 3),
				Up:              core.NewVec3(0, 1, 0),
				VFov:            20,
				FocusDistance:   10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tt.config.WithDefaults()); diff != "" {
				t.Errorf("WithDefaults() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCameraConfig_ImageHeight(t *testing.T) {
	assert.Equal(t, 225, CameraConfig{Width: 400, AspectRatio: 16.0 / 9.0}.ImageHeight())
	assert.Equal(t, 600, CameraConfig{Width: 600, AspectRatio: 1}.ImageHeight())
	assert.Equal(t, 1, CameraConfig{Width: 1, AspectRatio: 16.0 / 9.0}.ImageHeight())
}

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	camera := NewCamera(CameraConfig{Width: 3, AspectRatio: 1})

	width, height := camera.ImageSize()
	assert.Equal(t, 3, width)
	assert.Equal(t, 3, height)

	ray := camera.GetRay(1, 1, centerSampler{})
	assert.Equal(t, core.NewVec3(0, 0, -1), ray.Origin)

	dir := ray.Direction.Normalize()
	assert.InDelta(t, 0, dir.X, 1e-12)
	assert.InDelta(t, 0, dir.Y, 1e-12)
	assert.InDelta(t, 1, dir.Z, 1e-12)
}

func TestCamera_RowZeroIsTop(t *testing.T) {
	// Looking down +Z with +Y up, image right is world -X
	camera := NewCamera(CameraConfig{Width: 3, AspectRatio: 1})

	top := camera.GetRay(1, 0, centerSampler{})
	bottom := camera.GetRay(1, 2, centerSampler{})
	left := camera.GetRay(0, 1, centerSampler{})
	right := camera.GetRay(2, 1, centerSampler{})

	assert.Greater(t, top.Direction.Y, 0.0)
	assert.Less(t, bottom.Direction.Y, 0.0)
	assert.Greater(t, left.Direction.X, 0.0)
	assert.Less(t, right.Direction.X, 0.0)
}

func TestCamera_FieldOfView(t *testing.T) {
	// With vfov 90 and focus distance 1 the viewport spans [-1, 1] vertically
	camera := NewCamera(CameraConfig{Width: 2, AspectRatio: 1, VFov: 90, FocusDistance: 1})

	// Top-left corner of pixel (0, 0)
	ray := camera.GetRay(0, 0, fixedCornerSampler{})
	target := ray.Origin.Add(ray.Direction)
	assert.InDelta(t, 1, target.X, 1e-12)
	assert.InDelta(t, 1, target.Y, 1e-12)
	assert.InDelta(t, 0, target.Z, 1e-12)
}

func TestCamera_DefocusDisk(t *testing.T) {
	config := CameraConfig{Width: 4, AspectRatio: 1, DefocusAngle: 10, FocusDistance: 10}
	camera := NewCamera(config)
	radius := 10 * math.Tan(5*math.Pi/180)
	sampler := core.NewSeededSampler(7)

	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(2, 2, sampler)
		offset := ray.Origin.Subtract(*config.WithDefaults().LookFrom)
		assert.LessOrEqual(t, offset.Length(), radius+1e-9)
		assert.InDelta(t, 0, offset.Z, 1e-12, "disk lies in the lens plane")
		if offset.Length() > 1e-6 {
			moved = true
		}
	}
	assert.True(t, moved, "defocus should move ray origins")
}

func TestCameraConfig_WithDefaultsLeavesInputUntouched(t *testing.T) {
	eye := core.NewVec3(1, 2, 3)
	config := CameraConfig{LookFrom: &eye, LookAt: eye}

	resolved := config.WithDefaults()
	assert.Equal(t, core.NewVec3(1, 2, 2), *resolved.LookFrom)
	assert.Equal(t, core.NewVec3(1, 2, 3), eye)
}

// fixedCornerSampler samples the top-left corner of each pixel
type fixedCornerSampler struct{}

func (fixedCornerSampler) Get1D() float64   { return 0 }
func (fixedCornerSampler) Get2D() core.Vec2 { return core.NewVec2(0, 0) }
func (fixedCornerSampler) Get3D() core.Vec3 { return core.Vec3{} }
