package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

const (
	defaultScene = "default"

	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 200
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Built-in name or "yaml:<name>"
	Width   int    // 0 keeps the scene's width
	Samples int    // 0 keeps the scene's samples per pixel
	Depth   int    // 0 keeps the scene's max depth
	Seed    int64
	Format  string // png or ppm
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: strings.ToLower(values.Get("format"))}
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	if req.Format == "" {
		req.Format = renderer.FormatPNG
	}
	if req.Format != renderer.FormatPNG && req.Format != renderer.FormatPPM {
		return nil, fmt.Errorf("format must be png or ppm, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}

	req.Seed = renderer.DefaultSeed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// resolveScene builds the requested scene; procedural content uses seed
func (s *Server) resolveScene(id string, seed int64) (*scene.Scene, error) {
	return scene.Resolve(id, s.config.ScenesDir, scene.Options{Seed: seed})
}

// applyOverrides replaces scene camera settings with non-zero request values
func (req *RenderRequest) applyOverrides(config renderer.CameraConfig) renderer.CameraConfig {
	if req.Width > 0 {
		config.Width = req.Width
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		config.MaxDepth = req.Depth
	}
	return config
}

// handleRender renders a scene and responds with the encoded image.
// At most MaxRenders renders run at once; a client disconnect cancels its render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.resolveScene(req.Scene, req.Seed)
	if err != nil {
		writeSceneError(w, err)
		return
	}

	ctx := r.Context()
	requestID := s.newRequestID()
	logger := NewWebLogger(requestID, s.console)

	if err := s.renders.Acquire(ctx, 1); err != nil {
		writeError(w, http.StatusServiceUnavailable, "render slot not available: "+err.Error())
		return
	}
	defer s.renders.Release(1)

	config := req.applyOverrides(sceneObj.Camera)
	raytracer := renderer.NewRaytracer(sceneObj.World, config)
	raytracer.SetWorkers(s.config.Workers)
	raytracer.SetSeed(req.Seed)
	raytracer.SetLogger(logger)

	logger.Printf("Rendering scene %s\n", sceneObj.Name)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		glog.Warningf("[%s] render aborted: %v", requestID, err)
		writeError(w, http.StatusServiceUnavailable, "render aborted: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := renderer.WriteImage(&buf, img, req.Format); err != nil {
		glog.Errorf("[%s] failed to encode image: %v", requestID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType(req.Format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Request-Id", requestID)
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		glog.Warningf("[%s] failed to write response: %v", requestID, err)
	}
}
