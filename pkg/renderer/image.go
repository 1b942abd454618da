package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// RGB is a quantized, gamma-corrected pixel
type RGB struct {
	R, G, B uint8
}

// Image is a row-major pixel grid; row 0 is the top of the picture
type Image struct {
	Width  int
	Height int
	Pixels []RGB
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]RGB, width*height),
	}
}

// At returns the pixel at column x, row y
func (img *Image) At(x, y int) RGB {
	return img.Pixels[y*img.Width+x]
}

// Set stores the pixel at column x, row y
func (img *Image) Set(x, y int, c RGB) {
	img.Pixels[y*img.Width+x] = c
}

// ToRGBA converts the grid to an opaque standard library image
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}

// ToRGB gamma-corrects (gamma 2) a linear color and quantizes it to [0,255]
func ToRGB(c core.Vec3) RGB {
	return RGB{R: quantize(c.X), G: quantize(c.Y), B: quantize(c.Z)}
}

// quantize maps a linear channel to int(256 * clamp(sqrt(c), 0, 0.999)).
// NaN and negative values become 0.
func quantize(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	return uint8(256 * min(math.Sqrt(c), 0.999))
}
