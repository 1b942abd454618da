package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// Config holds the server settings
type Config struct {
	Port       int
	ScenesDir  string // Directory searched for YAML scenes
	MaxRenders int64  // Concurrent renders; further requests wait
	Workers    int    // Workers per render, 0 = CPU count
}

// Server handles web requests for the raytracer
type Server struct {
	config  Config
	renders *semaphore.Weighted
	console *Console
	nextID  atomic.Uint64
	mux     *http.ServeMux
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	if config.MaxRenders <= 0 {
		config.MaxRenders = 1
	}

	s := &Server{
		config:  config,
		renders: semaphore.NewWeighted(config.MaxRenders),
		console: NewConsole(200),
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/console", s.handleConsole)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Handler returns the HTTP handler serving all endpoints
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		glog.Infof("Starting web server on http://localhost%s", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("while shutting down: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// newRequestID returns a short identifier for log correlation
func (s *Server) newRequestID() string {
	return fmt.Sprintf("req-%d", s.nextID.Add(1))
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and YAML scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		glog.Errorf("failed to list scenes: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default camera configuration for a scene together with request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := s.resolveScene(sceneName, renderer.DefaultSeed)
	if err != nil {
		writeSceneError(w, err)
		return
	}

	config := sceneObj.Camera.WithDefaults()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.ImageHeight(),
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"vfov":            config.VFov,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minWidth, "max": maxWidth},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleConsole returns the most recent render log lines
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		glog.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeSceneError maps scene construction failures to status codes
func writeSceneError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
