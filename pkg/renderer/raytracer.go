package renderer

import (
	"context"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
)

const (
	DefaultTileSize = 32
	DefaultSeed     = 42
)

// Raytracer renders a frozen world through a camera
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator

	workers  int
	tileSize int
	seed     int64
	logger   core.Logger
}

// NewRaytracer creates a raytracer for world; unset camera fields take their defaults
func NewRaytracer(world geometry.Hittable, config CameraConfig) *Raytracer {
	camera := NewCamera(config)
	resolved := camera.Config()
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(resolved.MaxDepth, resolved.Background),
		tileSize:   DefaultTileSize,
		seed:       DefaultSeed,
		logger:     core.NewGlogLogger(1),
	}
}

// SetWorkers sets the number of parallel workers; 0 uses the CPU count
func (rt *Raytracer) SetWorkers(workers int) {
	rt.workers = workers
}

// SetTileSize sets the edge length of square tiles; values < 1 restore the default
func (rt *Raytracer) SetTileSize(tileSize int) {
	if tileSize < 1 {
		tileSize = DefaultTileSize
	}
	rt.tileSize = tileSize
}

// SetSeed sets the base seed. The same seed always renders the same image.
func (rt *Raytracer) SetSeed(seed int64) {
	rt.seed = seed
}

// SetLogger replaces the progress logger
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// SetIntegrator replaces the default path tracer
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render traces every pixel and returns the quantized image.
// It only fails when ctx is cancelled.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	config := rt.camera.Config()
	width, height := rt.camera.ImageSize()

	img := NewImage(width, height)
	tiles := NewTileGrid(width, height, rt.tileSize, rt.seed)
	pool := NewWorkerPool(rt.workers)

	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, TaskID: i}
	}

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d tiles on %d workers\n",
		width, height, config.SamplesPerPixel, config.MaxDepth, len(tiles), pool.GetNumWorkers())

	results, err := pool.Run(ctx, tasks, func(ctx context.Context, task TileTask) (RenderStats, error) {
		return rt.renderTile(ctx, task.Tile, img)
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: config.SamplesPerPixel,
		MaxDepth:        config.MaxDepth,
		Tiles:           len(tiles),
		Workers:         pool.GetNumWorkers(),
	}
	for _, result := range results {
		stats.Merge(result.Stats)
	}
	stats.Elapsed = time.Since(start)

	rt.logger.Printf("Rendered %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Elapsed)
	return img, stats, nil
}

// renderTile writes the pixels inside tile.Bounds to img
func (rt *Raytracer) renderTile(ctx context.Context, tile *Tile, img *Image) (RenderStats, error) {
	var stats RenderStats
	sampler := core.NewRandomSampler(tile.Random)
	samples := rt.camera.Config().SamplesPerPixel

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var ps PixelStats
			for s := 0; s < samples; s++ {
				ray := rt.camera.GetRay(i, j, sampler)
				ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
			}
			img.Set(i, j, ToRGB(ps.GetColor()))

			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
		}
	}
	return stats, nil
}
