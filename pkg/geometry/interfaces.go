package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// PrimitiveKind identifies which primitive list produced a hit
type PrimitiveKind int

const (
	KindNone PrimitiveKind = iota
	KindSphere
	KindTriangle
	KindMeshFace
)

// String returns a readable name for the kind
func (k PrimitiveKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	case KindMeshFace:
		return "mesh face"
	default:
		return "none"
	}
}

// Intersection is the closest hit along a ray. It is built once per query and never modified.
type Intersection struct {
	Point    core.Vec3       // Hit point, ray.At(T)
	Normal   core.Vec3       // Unit surface normal, outward for spheres, face normal for triangles
	Material *scene.Material // Shared material of the hit primitive
	T        float64         // Ray parameter of the hit
	Found    bool            // False when the ray escapes the scene
	Kind     PrimitiveKind
}

// Miss is the empty intersection returned when nothing is hit
var Miss = Intersection{}
