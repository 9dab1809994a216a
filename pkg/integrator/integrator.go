package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the unclamped color seen along a ray.
	// depth is 0 for camera rays and grows by one per mirror bounce.
	RayColor(ray core.Ray, depth int) core.Vec3
}

// RayCounts tallies the rays cast by one integrator instance
type RayCounts struct {
	Camera     int // Rays traced at depth 0
	Reflection int // Mirror bounces
	Shadow     int // Occlusion tests toward point lights
}

// Add returns the sum of two tallies
func (rc RayCounts) Add(other RayCounts) RayCounts {
	return RayCounts{
		Camera:     rc.Camera + other.Camera,
		Reflection: rc.Reflection + other.Reflection,
		Shadow:     rc.Shadow + other.Shadow,
	}
}

// Total returns the number of rays of all kinds
func (rc RayCounts) Total() int {
	return rc.Camera + rc.Reflection + rc.Shadow
}
