package renderer

import (
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	TotalPixels     int // Total number of pixels rendered
	TotalSamples    int // Total number of samples taken
	SamplesPerPixel int
	MaxDepth        int
	Tiles           int
	Workers         int
	Elapsed         time.Duration
}

// Merge adds the pixel and sample counts of a tile to the totals
func (rs *RenderStats) Merge(tile RenderStats) {
	rs.TotalPixels += tile.TotalPixels
	rs.TotalSamples += tile.TotalSamples
}

// SamplesPerSecond returns the throughput, 0 before any time has elapsed
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Elapsed.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}
