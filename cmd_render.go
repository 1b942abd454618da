package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
	"github.com/df07/go-bvh-raytracer/pkg/watcher"
)

// renderOptions holds the render command flags. Zero numeric values keep the scene's own settings.
type renderOptions struct {
	scene   string
	file    string
	width   int
	samples int
	depth   int
	seed    int64
	workers int
	format  string
	output  string
	texture string
	watch   bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a scene to an image file",
	Long: `Render a built-in scene (--scene) or a YAML scene file (--file).
Output goes to output/<scene>/render_<timestamp>.<format> unless --output is given.
With --watch the scene file and its textures are re-rendered whenever they change.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVar(&renderOpts.scene, "scene", "default", "Built-in scene name (see 'scenes')")
	flags.StringVar(&renderOpts.file, "file", "", "YAML scene file, overrides --scene")
	flags.IntVar(&renderOpts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flags.IntVar(&renderOpts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flags.IntVar(&renderOpts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	flags.Int64Var(&renderOpts.seed, "seed", renderer.DefaultSeed, "Random seed for sampling and procedural content")
	flags.IntVar(&renderOpts.workers, "workers", 0, "Worker goroutines (0 = number of CPUs)")
	flags.StringVar(&renderOpts.format, "format", renderer.FormatPNG, "Output format: png or ppm")
	flags.StringVarP(&renderOpts.output, "output", "o", "", "Output file path")
	flags.StringVar(&renderOpts.texture, "texture", "", "Image for scenes with an image texture (earth)")
	flags.BoolVar(&renderOpts.watch, "watch", false, "Re-render when the scene file or its textures change")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := renderOpts
	opts.format = strings.ToLower(opts.format)
	if opts.format != renderer.FormatPNG && opts.format != renderer.FormatPPM {
		return fmt.Errorf("unknown format %q, want png or ppm", opts.format)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	assets, err := renderOnce(ctx, opts, time.Now())
	if err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	return watchAndRender(ctx, opts, assets)
}

// loadScene builds the scene selected by the flags
func loadScene(opts renderOptions) (*scene.Scene, error) {
	sceneOpts := scene.Options{TexturePath: opts.texture, Seed: opts.seed}
	if opts.file != "" {
		return scene.LoadFile(opts.file, sceneOpts)
	}
	return scene.Build(opts.scene, sceneOpts)
}

// applyFlags overrides camera settings given on the command line
func applyFlags(config renderer.CameraConfig, opts renderOptions) renderer.CameraConfig {
	if opts.width > 0 {
		config.Width = opts.width
	}
	if opts.samples > 0 {
		config.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		config.MaxDepth = opts.depth
	}
	return config
}

// outputPath returns --output, or output/<scene>/render_<timestamp>.<format>
func outputPath(opts renderOptions, sceneName string, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), opts.format)
	return filepath.Join("output", sceneName, filename)
}

// renderOnce renders and writes one image, returning the files the scene was built from
func renderOnce(ctx context.Context, opts renderOptions, now time.Time) ([]string, error) {
	s, err := loadScene(opts)
	if err != nil {
		return nil, err
	}

	rt := renderer.NewRaytracer(s.World, applyFlags(s.Camera, opts))
	rt.SetWorkers(opts.workers)
	rt.SetSeed(opts.seed)

	glog.Infof("Rendering scene %s (%d objects)", s.Name, s.PrimitiveCount())
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("while rendering %s: %w", s.Name, err)
	}

	path := outputPath(opts, s.Name, now)
	if err := writeImageFile(path, img, opts.format); err != nil {
		return nil, err
	}

	glog.Infof("Rendered %dx%d, %d samples on %d workers in %v (%.0f samples/s)",
		stats.Width, stats.Height, stats.TotalSamples, stats.Workers, stats.Elapsed, stats.SamplesPerSecond())
	fmt.Printf("Render saved as %s\n", path)
	return s.Assets, nil
}

func writeImageFile(path string, img *renderer.Image, format string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if err := renderer.WriteImage(file, img, format); err != nil {
		return fmt.Errorf("while writing %s: %w", path, err)
	}
	return nil
}

// watchAndRender re-renders on every change to the scene's files until ctx is done
func watchAndRender(ctx context.Context, opts renderOptions, assets []string) error {
	if len(assets) == 0 {
		return errors.New("--watch needs a scene file or texture to watch")
	}

	fw, err := watcher.NewFileWatcher(200 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.SetFiles(assets); err != nil {
		return err
	}
	glog.Infof("Watching %d files, press Ctrl+C to stop", len(assets))

	var mu sync.Mutex
	return fw.Run(ctx, func(path string) {
		mu.Lock()
		defer mu.Unlock()

		glog.Infof("%s changed, re-rendering", path)
		newAssets, err := renderOnce(ctx, opts, time.Now())
		if err != nil {
			// Keep watching so the next save can fix the scene
			glog.Errorf("render failed: %v", err)
			return
		}
		if err := fw.SetFiles(newAssets); err != nil {
			glog.Errorf("failed to update watched files: %v", err)
		}
	})
}
