package renderer

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// CameraConfig contains all camera and sampling parameters.
// Zero-valued fields are unset; WithDefaults fills them in.
type CameraConfig struct {
	Width           int     // Image width in pixels
	AspectRatio     float64 // Width / height
	SamplesPerPixel int
	MaxDepth        int // Maximum ray bounce depth

	LookFrom *core.Vec3 // nil places the eye at (0, 0, -1)
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // Vertical field of view in degrees

	DefocusAngle  float64 // Variation angle of rays through each pixel, 0 disables depth of field
	FocusDistance float64 // Distance from LookFrom to the plane of perfect focus

	// Background is the radiance of escaping rays; nil selects the sky gradient
	Background *core.Vec3
}

// WithDefaults returns a copy of the config with every unset field filled in
func (c CameraConfig) WithDefaults() CameraConfig {
	if c.Width <= 0 {
		c.Width = 400
	}
	if c.AspectRatio <= 0 {
		c.AspectRatio = 16.0 / 9.0
	}
	if c.SamplesPerPixel <= 0 {
		c.SamplesPerPixel = 100
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 50
	}
	if c.LookFrom == nil {
		c.LookFrom = Point(0, 0, -1)
	}
	// Coincident eye and target leave no view direction
	if *c.LookFrom == c.LookAt {
		nudged := c.LookAt.Add(core.NewVec3(0, 0, -1))
		c.LookFrom = &nudged
	}
	if c.Up == (core.Vec3{}) {
		c.Up = core.NewVec3(0, 1, 0)
	}
	if c.VFov <= 0 {
		c.VFov = 20
	}
	if c.DefocusAngle < 0 {
		c.DefocusAngle = 0
	}
	if c.FocusDistance <= 0 {
		c.FocusDistance = 10
	}
	return c
}

// Point returns a pointer to a new vector, for the optional CameraConfig fields
func Point(x, y, z float64) *core.Vec3 {
	v := core.NewVec3(x, y, z)
	return &v
}

// ImageHeight returns the image height implied by width and aspect ratio, at least 1
func (c CameraConfig) ImageHeight() int {
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Camera generates rays for rendering
type Camera struct {
	config CameraConfig

	imageWidth  int
	imageHeight int

	center      core.Vec3 // Camera center
	pixel00     core.Vec3 // Location of pixel (0, 0), the top-left pixel
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below

	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera derives the viewport from config; unset fields take their defaults
func NewCamera(config CameraConfig) *Camera {
	config = config.WithDefaults()

	imageWidth := config.Width
	imageHeight := config.ImageHeight()

	center := *config.LookFrom

	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(imageWidth) / float64(imageHeight)

	// Orthonormal camera basis
	w := center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	pixelDeltaU := viewportU.Multiply(1.0 / float64(imageWidth))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageWidth:   imageWidth,
		imageHeight:  imageHeight,
		center:       center,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// Config returns the resolved configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageSize returns the image dimensions in pixels
func (c *Camera) ImageSize() (width, height int) {
	return c.imageWidth, c.imageHeight
}

// GetRay returns a ray through a random point in pixel (i, j), originating from
// the camera center or the defocus disk around it
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
