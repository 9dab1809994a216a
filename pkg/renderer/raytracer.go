package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	NumWorkers     int // Number of parallel workers (0 = use CPU count)
	BandsPerWorker int // Row bands per worker, more bands balance uneven rows better
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers:     0, // Auto-detect CPU count
		BandsPerWorker: 4,
	}
}

// Raytracer renders the cameras of a scene. The scene is shared read-only by all workers.
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRaytracer creates a new raytracer; a nil logger discards output
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.BandsPerWorker <= 0 {
		config.BandsPerWorker = 1
	}
	return &Raytracer{
		scene:      s,
		config:     config,
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// Render draws the image seen by camera. Rows are split into bands rendered
// in parallel; each band writes only its own rows of the frame.
func (rt *Raytracer) Render(ctx context.Context, camera scene.Camera) (*Frame, RenderStats, error) {
	if err := camera.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	frame := NewFrame(camera.ImageName, camera.Width, camera.Height)
	bands := SplitRows(camera.Height, rt.workerPool.GetNumWorkers()*rt.config.BandsPerWorker)
	results := make([]bandStats, len(bands))

	rt.logger.Printf("Rendering %s: %dx%d in %d bands (using %d workers)...\n",
		camera.ImageName, camera.Width, camera.Height, len(bands), rt.workerPool.GetNumWorkers())

	err := rt.workerPool.Run(ctx, bands, func(i int, band RowBand) error {
		results[i] = rt.renderBand(camera, band, frame)
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render %s: %w", camera.ImageName, err)
	}

	stats := RenderStats{
		Bands:    len(bands),
		Workers:  rt.workerPool.GetNumWorkers(),
		Duration: time.Since(startTime),
	}
	mergeBandStats(&stats, results)
	return frame, stats, nil
}

// renderBand renders rows [band.Start, band.End) of the frame with a private integrator
func (rt *Raytracer) renderBand(camera scene.Camera, band RowBand, frame *Frame) bandStats {
	whitted := integrator.NewWhittedIntegrator(rt.scene)
	pixelWidth, pixelHeight := PixelSize(camera)

	for row := band.Start; row < band.End; row++ {
		for col := 0; col < camera.Width; col++ {
			ray := GenerateRay(camera, row, col, pixelWidth, pixelHeight)
			frame.Set(row, col, whitted.RayColor(ray, 0))
		}
	}

	return bandStats{
		pixels: band.Rows() * camera.Width,
		rays:   whitted.Counts(),
	}
}
