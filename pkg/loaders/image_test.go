package loaders

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// testImage is 2x2: white, red / green, blue
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func writeFile(t *testing.T, name string, encode func(io.Writer) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f))
	require.NoError(t, f.Close())
	return path
}

func TestLoadImage(t *testing.T) {
	src := testImage()
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer) error
	}{
		{"png", "test.png", func(w io.Writer) error { return png.Encode(w, src) }},
		{"bmp", "test.bmp", func(w io.Writer) error { return bmp.Encode(w, src) }},
		{"tiff", "test.tiff", func(w io.Writer) error { return tiff.Encode(w, src, nil) }},
	}

	white := core.NewVec3(1.0, 1.0, 1.0)
	red := core.NewVec3(1.0, 0.0, 0.0)
	green := core.NewVec3(0.0, 1.0, 0.0)
	blue := core.NewVec3(0.0, 0.0, 1.0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imageData, err := LoadImage(writeFile(t, tt.file, tt.encode))
			require.NoError(t, err)

			assert.Equal(t, 2, imageData.Width())
			assert.Equal(t, 2, imageData.Height())
			require.Len(t, imageData.Pixels, 4)

			assert.Equal(t, white, imageData.Pixel(0, 0))
			assert.Equal(t, red, imageData.Pixel(1, 0))
			assert.Equal(t, green, imageData.Pixel(0, 1))
			assert.Equal(t, blue, imageData.Pixel(1, 1))
		})
	}
}

func TestLoadImage_JPEGApproximate(t *testing.T) {
	solid := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			solid.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := writeFile(t, "solid.jpg", func(w io.Writer) error {
		return jpeg.Encode(w, solid, &jpeg.Options{Quality: 100})
	})

	imageData, err := LoadImage(path)
	require.NoError(t, err)

	p := imageData.Pixel(4, 4)
	assert.InDelta(t, 200.0/255, p.X, 0.03)
	assert.InDelta(t, 100.0/255, p.Y, 0.03)
	assert.InDelta(t, 50.0/255, p.Z, 0.03)
}

func TestLoadImage_NotFound(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nonexistent.png"))
	require.Error(t, err)

	var assetErr *AssetLoadError
	require.ErrorAs(t, err, &assetErr)
	assert.Contains(t, assetErr.Path, "nonexistent.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, IsAssetLoadError(err))
}

func TestLoadImage_NotAnImage(t *testing.T) {
	path := writeFile(t, "notes.png", func(w io.Writer) error {
		_, err := io.WriteString(w, "definitely not a png")
		return err
	})

	_, err := LoadImage(path)
	assert.True(t, IsAssetLoadError(err))
	assert.ErrorContains(t, err, "failed to decode image")
}

func TestImageData_AsTexture(t *testing.T) {
	imageData := FromImage(testImage())
	texture := material.NewImageTexture(imageData)

	// v=0 is the bottom row
	got := texture.Evaluate(core.NewVec2(0.75, 0.25), core.Vec3{})
	assert.Equal(t, core.NewVec3(0, 0, 1), got)
}
