package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	workers   int
}

// NewServer creates a new web server; workers of 0 uses every CPU
func NewServer(port int, scenesDir string, workers int) *Server {
	return &Server{port: port, scenesDir: scenesDir, workers: workers}
}

// SceneRequest selects one camera of one scene
type SceneRequest struct {
	Scene  string // Scene ID from /api/scenes
	Camera int    // 1-based camera index
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and discovered XML scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := loaders.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseSceneRequest reads the scene and camera parameters shared by all render endpoints
func (s *Server) parseSceneRequest(r *http.Request) (SceneRequest, error) {
	req := SceneRequest{Scene: r.URL.Query().Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Camera, err = parseIntParam(r.URL.Query(), "camera", 1, 1, 1000); err != nil {
		return req, err
	}
	return req, nil
}

// loadCamera resolves the requested scene and camera
func (s *Server) loadCamera(req SceneRequest) (*scene.Scene, scene.Camera, error) {
	info, err := loaders.FindScene(s.scenesDir, req.Scene)
	if err != nil {
		return nil, scene.Camera{}, err
	}
	sceneObj, err := loaders.LoadScene(info)
	if err != nil {
		return nil, scene.Camera{}, err
	}
	if req.Camera > len(sceneObj.Cameras) {
		return nil, scene.Camera{}, fmt.Errorf("scene %q has %d cameras, requested camera %d",
			req.Scene, len(sceneObj.Cameras), req.Camera)
	}
	return sceneObj, sceneObj.Cameras[req.Camera-1], nil
}

// statusFor maps load errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, loaders.ErrSceneNotFound):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrInvalidScene):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
