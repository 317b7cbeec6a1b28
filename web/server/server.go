package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Request limits shared by every render endpoint
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 1000
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/progress", s.handleProgress)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string        `json:"scene"`   // Scene name (e.g., "three-spheres")
	Width   int           `json:"width"`   // Image width, 0 keeps the scene default
	Samples int           `json:"samples"` // Samples per pixel, 0 keeps the scene default
	Depth   int           `json:"depth"`   // Maximum bounce depth, 0 keeps the scene default
	Seed    int64         `json:"seed"`    // Scene population and sampling seed
	Format  output.Format `json:"format"`  // Image encoding for /api/render
}

// Stats represents render statistics
type Stats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int64   `json:"totalSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	ElapsedMs       int64   `json:"elapsedMs"`
	SamplesPerSec   float64 `json:"samplesPerSecond"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		Width:           rs.Width,
		Height:          rs.Height,
		TotalPixels:     rs.TotalPixels,
		TotalSamples:    int64(rs.TotalSamples),
		SamplesPerPixel: rs.SamplesPerPixel,
		ElapsedMs:       rs.Duration.Milliseconds(),
		SamplesPerSec:   rs.SamplesPerSecond(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleRender renders a complete image and returns it as the response body
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := sceneObj.NewRaytracer(NewWebLogger(renderID, nil))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Render into memory so failures can still be reported as errors
	var buf bytes.Buffer
	writer, err := output.NewPixelWriter(req.Format, &buf)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := raytracer.Render(r.Context(), writer, nil)
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		log.Printf("Render %s failed: %v", renderID, err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	log.Printf("Render %s: %s %dx%d in %v", renderID, req.Scene, stats.Width, stats.Height, stats.Duration)

	w.Header().Set("Content-Type", contentType(req.Format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Render %s: writing response: %v", renderID, err)
	}
}

func contentType(format output.Format) string {
	if format == output.FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}

	req.Format = output.FormatPNG
	if value := query.Get("format"); value != "" {
		if req.Format, err = output.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseCommonSceneParams parses the parameters that select and size a scene
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return err
	}

	req.Seed = 42
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("invalid seed: %s", value)
		}
	}
	return nil
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

// createScene builds the requested scene with the request's overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}
	sceneObj.ApplyOverrides(
		renderer.CameraConfig{Width: req.Width},
		renderer.SamplingConfig{SamplesPerPixel: req.Samples, MaxDepth: req.Depth},
	)
	return sceneObj, nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = scene.DefaultSceneName
	}

	sceneObj, err := scene.Create(sceneName, 42)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera := sceneObj.CameraConfig
	sampling := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           camera.Width,
			"aspectRatio":     camera.AspectRatio,
			"vfov":            camera.VFov,
			"defocusAngle":    camera.DefocusAngle,
			"focusDistance":   camera.FocusDistance,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxDepth":        sampling.MaxDepth,
			"primitives":      sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width": map[string]int{
				"min": minWidth,
				"max": maxWidth,
			},
			"samples": map[string]int{
				"min": 1,
				"max": maxSamples,
			},
			"depth": map[string]int{
				"min": 1,
				"max": maxDepth,
			},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError writes a JSON error message
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
