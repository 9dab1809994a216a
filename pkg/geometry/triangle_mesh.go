package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// IntersectMesh returns the closest face hit of a mesh and the index of that face.
// Faces are tested exhaustively.
func IntersectMesh(ray core.Ray, mesh scene.Mesh) (TriangleHit, int, bool) {
	var closest TriangleHit
	face := -1

	for i := range mesh.Faces {
		hit, ok := IntersectTriangle(ray, mesh.Faces[i])
		if ok && (face < 0 || hit.T < closest.T) {
			closest = hit
			face = i
		}
	}

	return closest, face, face >= 0
}
