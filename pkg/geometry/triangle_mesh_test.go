package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestIntersectMesh(t *testing.T) {
	// Two stacked quads facing +z: z=0 and z=-1
	mesh := scene.NewMesh(testMaterial, [][3]core.Vec3{
		{core.NewVec3(0, 0, -1), core.NewVec3(1, 0, -1), core.NewVec3(1, 1, -1)},
		{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0)},
		{core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0)},
	})

	tests := []struct {
		name         string
		ray          core.Ray
		shouldHit    bool
		expectedT    float64
		expectedFace int
	}{
		{"nearest face wins", core.NewRay(core.NewVec3(0.75, 0.25, 2), core.NewVec3(0, 0, -1)), true, 2, 1},
		{"second triangle of quad", core.NewRay(core.NewVec3(0.25, 0.75, 2), core.NewVec3(0, 0, -1)), true, 2, 2},
		{"from between faces", core.NewRay(core.NewVec3(0.75, 0.25, -0.5), core.NewVec3(0, 0, -1)), true, 0.5, 0},
		{"miss", core.NewRay(core.NewVec3(2, 2, 2), core.NewVec3(0, 0, -1)), false, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, face, ok := IntersectMesh(tt.ray, mesh)
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, ok)
			}
			if face != tt.expectedFace {
				t.Errorf("Expected face %d, got %d", tt.expectedFace, face)
			}
			if ok && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestNewMesh_PrecomputesFaces(t *testing.T) {
	mesh := scene.NewMesh(testMaterial, [][3]core.Vec3{
		{core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0)},
	})
	face := mesh.Faces[0]
	if face.Edge1 != core.NewVec3(2, 0, 0) || face.Edge2 != core.NewVec3(0, 3, 0) {
		t.Errorf("Unexpected edges %v %v", face.Edge1, face.Edge2)
	}
	if face.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", face.Normal)
	}
	if face.Material != testMaterial {
		t.Error("Face should share the mesh material")
	}
}
