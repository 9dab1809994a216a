package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func validCamera() Camera {
	return Camera{
		Position:     core.NewVec3(0, 0, 0),
		Gaze:         core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		NearPlane:    NearPlane{Left: -1, Right: 1, Bottom: -1, Top: 1},
		NearDistance: 1,
		Width:        4,
		Height:       4,
		ImageName:    "test.ppm",
	}
}

func TestCamera_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Camera)
		wantErr bool
	}{
		{"valid", func(*Camera) {}, false},
		{"unnormalized gaze", func(c *Camera) { c.Gaze = core.NewVec3(0, 0, -7) }, false},
		{"zero width", func(c *Camera) { c.Width = 0 }, true},
		{"negative height", func(c *Camera) { c.Height = -3 }, true},
		{"empty near plane", func(c *Camera) { c.NearPlane.Right = c.NearPlane.Left }, true},
		{"zero gaze", func(c *Camera) { c.Gaze = core.Vec3{} }, true},
		{"gaze parallel to up", func(c *Camera) { c.Gaze = core.NewVec3(0, 3, 0) }, true},
		{"gaze antiparallel to up", func(c *Camera) { c.Gaze = core.NewVec3(0, -1, 0) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := validCamera()
			tt.modify(&camera)
			err := camera.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected error wrapping ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestNewTriangle_CachesEdgesAndNormal(t *testing.T) {
	mat := &Material{}
	tri := NewTriangle(core.NewVec3(1, 1, 1), core.NewVec3(3, 1, 1), core.NewVec3(1, 4, 1), mat)

	if tri.Edge1 != core.NewVec3(2, 0, 0) {
		t.Errorf("Expected edge1 (2,0,0), got %v", tri.Edge1)
	}
	if tri.Edge2 != core.NewVec3(0, 3, 0) {
		t.Errorf("Expected edge2 (0,3,0), got %v", tri.Edge2)
	}
	if tri.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", tri.Normal)
	}
	if tri.Material != mat {
		t.Error("Triangle should reference, not copy, its material")
	}
}

func TestScene_Validate(t *testing.T) {
	mat := &Material{}
	good := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), mat)
	degenerate := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), mat)

	tests := []struct {
		name    string
		modify  func(*Scene)
		wantErr bool
	}{
		{"valid", func(*Scene) {}, false},
		{"negative epsilon", func(s *Scene) { s.ShadowRayEpsilon = -1 }, true},
		{"negative depth", func(s *Scene) { s.MaxRecursionDepth = -1 }, true},
		{"bad camera", func(s *Scene) { s.Cameras[0].Width = 0 }, true},
		{"sphere without material", func(s *Scene) { s.Spheres[0].Material = nil }, true},
		{"zero radius", func(s *Scene) { s.Spheres[0].Radius = 0 }, true},
		{"NaN radius", func(s *Scene) { s.Spheres[0].Radius = math.NaN() }, true},
		{"infinite radius", func(s *Scene) { s.Spheres[0].Radius = math.Inf(1) }, true},
		{"degenerate triangle", func(s *Scene) { s.Triangles = append(s.Triangles, degenerate) }, true},
		{"mesh without material", func(s *Scene) { s.Meshes[0].Material = nil }, true},
		{"degenerate mesh face", func(s *Scene) { s.Meshes[0].Faces = append(s.Meshes[0].Faces, degenerate) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			s.Cameras = []Camera{validCamera()}
			s.Materials = []*Material{mat}
			s.Spheres = []Sphere{NewSphere(core.NewVec3(0, 0, -5), 1, mat)}
			s.Triangles = []Triangle{good}
			s.Meshes = []Mesh{NewMesh(mat, [][3]core.Vec3{{good.V0, good.V1, good.V2}})}
			tt.modify(s)

			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected error wrapping ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default scene should be valid: %v", err)
	}
	if len(s.Cameras) != 1 {
		t.Fatalf("Expected one camera, got %d", len(s.Cameras))
	}
	if got := s.GetPrimitiveCount(); got != 8 {
		t.Errorf("Expected 8 primitives, got %d", got)
	}
	for i, face := range s.Meshes[0].Faces {
		if math.Abs(face.Normal.Length()-1) > 1e-12 {
			t.Errorf("Face %d normal not unit length: %v", i, face.Normal)
		}
	}
}
