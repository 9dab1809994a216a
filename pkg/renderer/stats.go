package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about one camera render
type RenderStats struct {
	Pixels   int                  // Pixels written
	Bands    int                  // Row bands the image was split into
	Workers  int                  // Maximum bands rendered at once
	Rays     integrator.RayCounts // Rays cast, by kind
	Duration time.Duration
}

// RaysPerPixel returns the average number of rays of all kinds per pixel
func (rs RenderStats) RaysPerPixel() float64 {
	if rs.Pixels == 0 {
		return 0
	}
	return float64(rs.Rays.Total()) / float64(rs.Pixels)
}

// bandStats is what a single band reports back
type bandStats struct {
	pixels int
	rays   integrator.RayCounts
}

// mergeBandStats folds per-band results into the render totals
func mergeBandStats(stats *RenderStats, bands []bandStats) {
	for _, b := range bands {
		stats.Pixels += b.pixels
		stats.Rays = stats.Rays.Add(b.rays)
	}
}
