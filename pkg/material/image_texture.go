package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// PixelSource is the minimal image capability needed by ImageTexture
type PixelSource interface {
	Width() int
	Height() int
	// Pixel returns the linear RGB color at (x, y), with y=0 the top row
	Pixel(x, y int) core.Vec3
}

// debugCyan marks lookups into an image with no pixels
var debugCyan = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Image PixelSource
}

// NewImageTexture creates a new image texture
func NewImageTexture(image PixelSource) *ImageTexture {
	return &ImageTexture{Image: image}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	width, height := t.Image.Width(), t.Image.Height()
	if width <= 0 || height <= 0 {
		return debugCyan
	}

	// Wrap UV coordinates to [0, 1]
	u := uv.X - float64(int(uv.X))
	v := uv.Y - float64(int(uv.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(width))
	y := int((1.0 - v) * float64(height))

	x = max(0, min(width-1, x))
	y = max(0, min(height-1, y))

	return t.Image.Pixel(x, y)
}
