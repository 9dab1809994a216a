package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// parallelEpsilon is float64 machine epsilon; smaller determinants mean the ray is parallel to the plane
const parallelEpsilon = 0x1p-52

// TriangleHit holds the ray parameter and barycentric coordinates of a triangle hit
type TriangleHit struct {
	T    float64
	U, V float64 // Weights of V1 and V2; V0 gets 1-U-V
}

// IntersectTriangle tests the ray against a triangle using the Möller-Trumbore
// algorithm with the edges cached on the triangle
func IntersectTriangle(ray core.Ray, tri scene.Triangle) (TriangleHit, bool) {
	h := ray.Direction.Cross(tri.Edge2)
	det := tri.Edge1.Dot(h)

	// Ray lies in, or parallel to, the triangle plane
	if math.Abs(det) < parallelEpsilon {
		return TriangleHit{}, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(tri.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return TriangleHit{}, false
	}

	q := s.Cross(tri.Edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return TriangleHit{}, false
	}

	t := f * tri.Edge2.Dot(q)
	if t <= hitEpsilon {
		return TriangleHit{}, false
	}

	return TriangleHit{T: t, U: u, V: v}, true
}
