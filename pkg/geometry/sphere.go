package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// discriminantEpsilon treats near-tangent rays as misses. It bounds the
	// discriminant of a unit-length direction; see IntersectSphere.
	discriminantEpsilon = 1e-5
	// hitEpsilon is the smallest t accepted as a hit, to avoid self-intersection at the origin
	hitEpsilon = 1e-5
)

// IntersectSphere returns the smallest t > hitEpsilon where the ray meets the sphere.
// The direction does not need to be unit length.
func IntersectSphere(ray core.Ray, sphere scene.Sphere) (float64, bool) {
	oc := ray.Origin.Subtract(sphere.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return 0, false
	}
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	// discriminant grows with a = |d|², so compare it against a scaled threshold
	// to keep the tangent cutoff independent of the direction length
	discriminant := b*b - 4*a*c
	if discriminant < discriminantEpsilon*a {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-b - sqrtD) / (2 * a)
	far := (-b + sqrtD) / (2 * a)

	// near <= far since a > 0
	if near > hitEpsilon {
		return near, true
	}
	if far > hitEpsilon {
		return far, true
	}
	return 0, false
}

// sphereNormal returns the outward unit normal at a point on the sphere
func sphereNormal(sphere scene.Sphere, point core.Vec3) core.Vec3 {
	return point.Subtract(sphere.Center).Normalize()
}
