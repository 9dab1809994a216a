package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ClosestHit returns the hit with the smallest valid t among all spheres,
// triangles and mesh faces of the scene. Found is false when nothing is hit.
func ClosestHit(ray core.Ray, s *scene.Scene) Intersection {
	closest := Miss

	// accept records a candidate only when it is nearer than the current best
	accept := func(t float64) bool {
		return !closest.Found || t < closest.T
	}

	for i := range s.Spheres {
		sphere := &s.Spheres[i]
		t, ok := IntersectSphere(ray, *sphere)
		if !ok || !accept(t) {
			continue
		}
		point := ray.At(t)
		closest = Intersection{
			Point:    point,
			Normal:   sphereNormal(*sphere, point),
			Material: sphere.Material,
			T:        t,
			Found:    true,
			Kind:     KindSphere,
		}
	}

	for i := range s.Triangles {
		tri := &s.Triangles[i]
		hit, ok := IntersectTriangle(ray, *tri)
		if !ok || !accept(hit.T) {
			continue
		}
		closest = triangleIntersection(ray, hit.T, tri.Normal, tri.Material, KindTriangle)
	}

	for i := range s.Meshes {
		mesh := &s.Meshes[i]
		hit, face, ok := IntersectMesh(ray, *mesh)
		if !ok || !accept(hit.T) {
			continue
		}
		closest = triangleIntersection(ray, hit.T, mesh.Faces[face].Normal, mesh.Material, KindMeshFace)
	}

	return closest
}

// triangleIntersection uses the cached face normal as is; it is unit length from construction
func triangleIntersection(ray core.Ray, t float64, normal core.Vec3, material *scene.Material, kind PrimitiveKind) Intersection {
	return Intersection{
		Point:    ray.At(t),
		Normal:   normal,
		Material: material,
		T:        t,
		Found:    true,
		Kind:     kind,
	}
}
