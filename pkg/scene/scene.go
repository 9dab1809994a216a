package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidScene is wrapped by every validation failure
var ErrInvalidScene = errors.New("invalid scene")

// Default values used when a scene description leaves them out
const (
	DefaultShadowRayEpsilon  = 1e-3
	DefaultMaxRecursionDepth = 0
)

// Scene is the read-only input of a render. It is built once by a loader
// and shared by all render workers without locking.
type Scene struct {
	Cameras           []Camera
	BackgroundColor   core.Vec3 // 0-255 range
	AmbientLight      core.Vec3
	PointLights       []PointLight
	Materials         []*Material
	Vertices          []core.Vec3
	Spheres           []Sphere
	Triangles         []Triangle
	Meshes            []Mesh
	ShadowRayEpsilon  float64
	MaxRecursionDepth int
}

// NewScene creates an empty scene with default epsilon and recursion depth
func NewScene() *Scene {
	return &Scene{
		ShadowRayEpsilon:  DefaultShadowRayEpsilon,
		MaxRecursionDepth: DefaultMaxRecursionDepth,
	}
}

// GetPrimitiveCount returns the number of intersectable primitives, counting each mesh face
func (s *Scene) GetPrimitiveCount() int {
	count := len(s.Spheres) + len(s.Triangles)
	for _, mesh := range s.Meshes {
		count += len(mesh.Faces)
	}
	return count
}

// Validate reports the first load-time problem found in the scene.
// Rendering code assumes a scene that passed Validate.
func (s *Scene) Validate() error {
	if s.ShadowRayEpsilon < 0 {
		return fmt.Errorf("%w: negative shadow ray epsilon %g", ErrInvalidScene, s.ShadowRayEpsilon)
	}
	if s.MaxRecursionDepth < 0 {
		return fmt.Errorf("%w: negative max recursion depth %d", ErrInvalidScene, s.MaxRecursionDepth)
	}
	for _, camera := range s.Cameras {
		if err := camera.Validate(); err != nil {
			return err
		}
	}
	for i, sphere := range s.Spheres {
		if sphere.Material == nil {
			return fmt.Errorf("%w: sphere %d has no material", ErrInvalidScene, i+1)
		}
		if !(sphere.Radius > 0) || math.IsInf(sphere.Radius, 1) {
			return fmt.Errorf("%w: sphere %d has radius %g", ErrInvalidScene, i+1, sphere.Radius)
		}
	}
	for i, triangle := range s.Triangles {
		if err := validateTriangle(triangle); err != nil {
			return fmt.Errorf("triangle %d: %w", i+1, err)
		}
	}
	for i, mesh := range s.Meshes {
		if mesh.Material == nil {
			return fmt.Errorf("%w: mesh %d has no material", ErrInvalidScene, i+1)
		}
		for j, face := range mesh.Faces {
			if err := validateTriangle(face); err != nil {
				return fmt.Errorf("mesh %d face %d: %w", i+1, j+1, err)
			}
		}
	}
	return nil
}

func validateTriangle(t Triangle) error {
	if t.Material == nil {
		return fmt.Errorf("%w: no material", ErrInvalidScene)
	}
	if t.Normal.IsZero() {
		return fmt.Errorf("%w: degenerate triangle", ErrInvalidScene)
	}
	return nil
}
