package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator computes ambient, shadowed Blinn-Phong and perfect mirror
// reflection. It only reads the scene; one instance must not be shared between
// goroutines because it keeps ray counts.
type WhittedIntegrator struct {
	scene  *scene.Scene
	counts RayCounts
}

// NewWhittedIntegrator creates a new Whitted integrator for the scene
func NewWhittedIntegrator(s *scene.Scene) *WhittedIntegrator {
	return &WhittedIntegrator{scene: s}
}

// Counts returns the rays cast so far
func (wi *WhittedIntegrator) Counts() RayCounts {
	return wi.counts
}

// RayColor traces the ray into the scene and shades the closest hit
func (wi *WhittedIntegrator) RayColor(ray core.Ray, depth int) core.Vec3 {
	// Past the recursion cap no more light is gathered
	if depth > wi.scene.MaxRecursionDepth {
		return core.Vec3{}
	}

	if depth == 0 {
		wi.counts.Camera++
	}
	hit := geometry.ClosestHit(ray, wi.scene)
	return wi.Shade(hit, ray, depth)
}

// Shade returns the color for an intersection produced by ray at the given depth.
// The result is not clamped; mirror contributions from deeper bounces are summed as is.
func (wi *WhittedIntegrator) Shade(hit geometry.Intersection, ray core.Ray, depth int) core.Vec3 {
	if depth > wi.scene.MaxRecursionDepth {
		return core.Vec3{}
	}

	if !hit.Found {
		// Only camera rays see the background; escaped bounces add nothing
		if depth == 0 {
			return wi.scene.BackgroundColor
		}
		return core.Vec3{}
	}

	mat := hit.Material
	color := wi.scene.AmbientLight.MultiplyVec(mat.Ambient)

	toViewer := ray.Origin.Subtract(hit.Point).Normalize()

	if mat.IsMirror && depth < wi.scene.MaxRecursionDepth {
		color = color.Add(wi.mirrorColor(hit, toViewer, depth))
	}

	for _, light := range wi.scene.PointLights {
		color = color.Add(wi.directLight(hit, toViewer, light))
	}

	return color
}

// mirrorColor follows the perfect reflection of the view vector one level deeper
func (wi *WhittedIntegrator) mirrorColor(hit geometry.Intersection, toViewer core.Vec3, depth int) core.Vec3 {
	reflected := toViewer.Reflect(hit.Normal).Normalize()
	if reflected.IsZero() {
		return core.Vec3{}
	}

	origin := hit.Point.Add(reflected.Multiply(wi.scene.ShadowRayEpsilon))
	wi.counts.Reflection++

	incoming := wi.RayColor(core.NewRay(origin, reflected), depth+1)
	return hit.Material.Mirror.MultiplyVec(incoming)
}

// directLight returns the diffuse and specular contribution of one point light,
// or zero when the light is occluded or sits on the hit point
func (wi *WhittedIntegrator) directLight(hit geometry.Intersection, toViewer core.Vec3, light scene.PointLight) core.Vec3 {
	toLight := light.Position.Subtract(hit.Point)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}
	}
	lightDir := toLight.Multiply(1.0 / distance)

	if wi.occluded(hit.Point, lightDir, distance) {
		return core.Vec3{}
	}

	mat := hit.Material
	irradiance := light.Intensity.Multiply(1.0 / (distance * distance))

	cosTheta := max(0.0, hit.Normal.Dot(lightDir))
	color := mat.Diffuse.MultiplyVec(irradiance).Multiply(cosTheta)

	half := lightDir.Add(toViewer).Normalize()
	if !half.IsZero() && lightDir.Dot(half) >= 0 {
		cosAlpha := max(0.0, hit.Normal.Dot(half))
		color = color.Add(mat.Specular.MultiplyVec(irradiance).Multiply(math.Pow(cosAlpha, mat.PhongExponent)))
	}

	return color
}

// occluded casts a shadow ray and reports whether anything lies closer than the light
func (wi *WhittedIntegrator) occluded(point, lightDir core.Vec3, distance float64) bool {
	origin := point.Add(lightDir.Multiply(wi.scene.ShadowRayEpsilon))
	wi.counts.Shadow++

	blocker := geometry.ClosestHit(core.NewRay(origin, lightDir), wi.scene)
	return blocker.Found && blocker.T < distance
}
