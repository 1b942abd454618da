package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// AssetLoadError reports an image or other asset that could not be read or decoded
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("failed to load asset %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// IsAssetLoadError reports whether err is or wraps an AssetLoadError
func IsAssetLoadError(err error) bool {
	var assetErr *AssetLoadError
	return errors.As(err, &assetErr)
}

// ImageData contains loaded image data as a row-major Vec3 color array in [0,1]
type ImageData struct {
	width  int
	height int
	Pixels []core.Vec3
}

// NewImageData wraps an existing row-major pixel slice
func NewImageData(width, height int, pixels []core.Vec3) *ImageData {
	return &ImageData{width: width, height: height, Pixels: pixels}
}

func (d *ImageData) Width() int  { return d.width }
func (d *ImageData) Height() int { return d.height }

// Pixel returns the color at column x, row y (row 0 at the top)
func (d *ImageData) Pixel(x, y int) core.Vec3 {
	return d.Pixels[y*d.width+x]
}

// LoadImage loads a PNG, JPEG, GIF, BMP, TIFF or WebP image and converts it to a Vec3 color array.
// Failures are returned as *AssetLoadError.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &AssetLoadError{Path: filename, Err: fmt.Errorf("failed to open image file: %w", err)}
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &AssetLoadError{Path: filename, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	return FromImage(img), nil
}

// FromImage converts any decoded image to ImageData
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return NewImageData(width, height, pixels)
}
