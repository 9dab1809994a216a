package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// imageContentTypes maps writer formats to response content types
var imageContentTypes = map[string]string{
	loaders.FormatPPM:  "image/x-portable-pixmap",
	loaders.FormatPNG:  "image/png",
	loaders.FormatBMP:  "image/bmp",
	loaders.FormatTIFF: "image/tiff",
}

// RenderComplete is the payload of the final "complete" SSE event
type RenderComplete struct {
	Scene          string      `json:"scene"`
	Camera         int         `json:"camera"`
	ImageName      string      `json:"imageName"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	ImageData      string      `json:"imageData"` // Base64 encoded PNG
	ElapsedMs      int64       `json:"elapsedMs"`
	PrimitiveCount int         `json:"primitiveCount"`
	Stats          RenderStats `json:"stats"`
}

// RenderStats is the JSON form of renderer.RenderStats
type RenderStats struct {
	Pixels         int     `json:"pixels"`
	Bands          int     `json:"bands"`
	Workers        int     `json:"workers"`
	CameraRays     int     `json:"cameraRays"`
	ReflectionRays int     `json:"reflectionRays"`
	ShadowRays     int     `json:"shadowRays"`
	RaysPerPixel   float64 `json:"raysPerPixel"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Camera    scene.Camera
	Raytracer *renderer.Raytracer
}

type renderResult struct {
	frame *renderer.Frame
	stats renderer.RenderStats
	err   error
}

// handleRender renders one camera and streams console output followed by the
// finished image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseSceneRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	startTime := time.Now()
	resultChan := make(chan renderResult, 1)
	go func() {
		frame, stats, err := pipeline.Raytracer.Render(ctx, pipeline.Camera)
		resultChan <- renderResult{frame: frame, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case result := <-resultChan:
			s.drainConsole(w, consoleChan)
			if result.err != nil {
				s.sendSSEEvent(w, "error", fmt.Sprintf("Rendering failed: %v", result.err))
				return
			}
			s.sendRenderComplete(w, req, pipeline, result, startTime)
			return

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// handleImage renders one camera and returns the encoded image directly
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = loaders.FormatPNG
	}
	contentType, ok := imageContentTypes[format]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, core.NopLogger{})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	frame, _, err := pipeline.Raytracer.Render(r.Context(), pipeline.Camera)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := loaders.EncodeImage(&buf, format, frame); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(buf.Bytes())
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// setupRenderingPipeline loads the scene and creates a raytracer logging to logger
func (s *Server) setupRenderingPipeline(req SceneRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, camera, err := s.loadCamera(req)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = s.workers
	return &RenderingPipeline{
		Scene:     sceneObj,
		Camera:    camera,
		Raytracer: renderer.NewRaytracer(sceneObj, config, logger),
	}, nil
}

// drainConsole forwards messages logged before the render finished
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendRenderComplete encodes the frame and sends the final event
func (s *Server) sendRenderComplete(w http.ResponseWriter, req SceneRequest, pipeline *RenderingPipeline, result renderResult, startTime time.Time) {
	imageData, err := frameToBase64PNG(result.frame)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	stats := result.stats
	complete := RenderComplete{
		Scene:          req.Scene,
		Camera:         req.Camera,
		ImageName:      pipeline.Camera.ImageName,
		Width:          result.frame.Width,
		Height:         result.frame.Height,
		ImageData:      imageData,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		PrimitiveCount: pipeline.Scene.GetPrimitiveCount(),
		Stats: RenderStats{
			Pixels:         stats.Pixels,
			Bands:          stats.Bands,
			Workers:        stats.Workers,
			CameraRays:     stats.Rays.Camera,
			ReflectionRays: stats.Rays.Reflection,
			ShadowRays:     stats.Rays.Shadow,
			RaysPerPixel:   stats.RaysPerPixel(),
		},
	}

	data, err := json.Marshal(complete)
	if err != nil {
		log.Printf("Error marshaling render result: %v", err)
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// frameToBase64PNG converts a frame to base64-encoded PNG
func frameToBase64PNG(frame *renderer.Frame) (string, error) {
	var buf bytes.Buffer
	if err := loaders.EncodeImage(&buf, loaders.FormatPNG, frame); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
