package renderer

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"strings"
)

// Output formats understood by WriteImage
const (
	FormatPPM = "ppm"
	FormatPNG = "png"
)

// WritePPM writes the image as plain-text P3 with one "r g b" triple per line
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, p := range img.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}
	return bw.Flush()
}

// WritePNG writes the image as PNG
func WritePNG(w io.Writer, img *Image) error {
	if err := png.Encode(w, img.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WriteImage writes the image in the named format (ppm or png)
func WriteImage(w io.Writer, img *Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return WritePNG(w, img)
	default:
		return fmt.Errorf("unknown image format %q (expected ppm or png)", format)
	}
}

// ContentType returns the MIME type for an output format
func ContentType(format string) string {
	if strings.ToLower(format) == FormatPPM {
		return "image/x-portable-pixmap"
	}
	return "image/png"
}
