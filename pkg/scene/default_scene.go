package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewDefaultScene creates a built-in scene: a mirror sphere and a matte sphere
// standing on a two-triangle floor, a small tetrahedron mesh and two point lights
func NewDefaultScene() *Scene {
	s := NewScene()
	s.BackgroundColor = core.NewVec3(20, 24, 40)
	s.AmbientLight = core.NewVec3(25, 25, 25)
	s.MaxRecursionDepth = 6

	s.Cameras = []Camera{{
		Position:     core.NewVec3(0, 1, 6),
		Gaze:         core.NewVec3(0, -0.1, -1),
		Up:           core.NewVec3(0, 1, 0),
		NearPlane:    NearPlane{Left: -1, Right: 1, Bottom: -0.5625, Top: 0.5625},
		NearDistance: 1.5,
		Width:        640,
		Height:       360,
		ImageName:    "default.ppm",
	}}

	s.PointLights = []PointLight{
		{Position: core.NewVec3(4, 6, 4), Intensity: core.NewVec3(9000, 9000, 9000)},
		{Position: core.NewVec3(-5, 4, 2), Intensity: core.NewVec3(2500, 2500, 3500)},
	}

	mirror := &Material{
		Ambient:       core.NewVec3(0.1, 0.1, 0.1),
		Diffuse:       core.NewVec3(0.2, 0.2, 0.2),
		Specular:      core.NewVec3(1, 1, 1),
		Mirror:        core.NewVec3(0.7, 0.7, 0.7),
		PhongExponent: 100,
		IsMirror:      true,
	}
	red := &Material{
		Ambient:       core.NewVec3(0.2, 0.05, 0.05),
		Diffuse:       core.NewVec3(0.8, 0.2, 0.2),
		Specular:      core.NewVec3(0.5, 0.5, 0.5),
		PhongExponent: 32,
	}
	floor := &Material{
		Ambient:       core.NewVec3(0.3, 0.3, 0.3),
		Diffuse:       core.NewVec3(0.6, 0.6, 0.55),
		Specular:      core.NewVec3(0.05, 0.05, 0.05),
		Mirror:        core.NewVec3(0.15, 0.15, 0.15),
		PhongExponent: 4,
		IsMirror:      true,
	}
	teal := &Material{
		Ambient:       core.NewVec3(0.05, 0.2, 0.2),
		Diffuse:       core.NewVec3(0.1, 0.6, 0.6),
		Specular:      core.NewVec3(0.3, 0.3, 0.3),
		PhongExponent: 16,
	}
	s.Materials = []*Material{mirror, red, floor, teal}

	s.Vertices = []core.Vec3{
		// Floor
		core.NewVec3(-8, -1, 8), core.NewVec3(8, -1, 8), core.NewVec3(8, -1, -8), core.NewVec3(-8, -1, -8),
		// Tetrahedron
		core.NewVec3(1.8, -1, 1.2), core.NewVec3(2.8, -1, 1.2), core.NewVec3(2.3, -1, 0.3), core.NewVec3(2.3, 0, 0.9),
		// Sphere centers
		core.NewVec3(-0.9, 0, -0.5), core.NewVec3(1.2, -0.4, -1.8),
	}
	v := s.Vertices

	s.Spheres = []Sphere{
		NewSphere(v[8], 1, mirror),
		NewSphere(v[9], 0.6, red),
	}
	s.Triangles = []Triangle{
		NewTriangle(v[0], v[1], v[2], floor),
		NewTriangle(v[0], v[2], v[3], floor),
	}
	s.Meshes = []Mesh{
		NewMesh(teal, [][3]core.Vec3{
			{v[4], v[5], v[7]},
			{v[5], v[6], v[7]},
			{v[6], v[4], v[7]},
			{v[4], v[6], v[5]},
		}),
	}

	return s
}
