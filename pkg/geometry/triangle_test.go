package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestIntersectTriangle(t *testing.T) {
	// Create a triangle in the XY plane
	triangle := scene.NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial,
	)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle interior",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits from behind",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Non-unit direction scales t",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -2), core.NewVec3(0, 0, 4)),
			shouldHit: true,
			expectedT: 0.5,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Triangle behind ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectTriangle(tt.ray, triangle)
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, ok)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.U < 0 || hit.V < 0 || hit.U+hit.V > 1 {
				t.Errorf("Barycentric coordinates out of range: u=%f v=%f", hit.U, hit.V)
			}
		})
	}
}

func TestIntersectTriangle_WindingInvariance(t *testing.T) {
	v0 := core.NewVec3(-1, -1, -3)
	v1 := core.NewVec3(1, -1, -3)
	v2 := core.NewVec3(0, 1, -3)
	ccw := scene.NewTriangle(v0, v1, v2, testMaterial)
	cw := scene.NewTriangle(v0, v2, v1, testMaterial)

	if ccw.Normal.Add(cw.Normal).Length() > 1e-12 {
		t.Errorf("Expected opposite normals, got %v and %v", ccw.Normal, cw.Normal)
	}
	if math.Abs(ccw.Normal.Length()-1) > 1e-12 {
		t.Errorf("Expected unit normal, got length %f", ccw.Normal.Length())
	}

	origin := core.NewVec3(0, 0, 0)
	targets := []core.Vec3{
		core.NewVec3(0, 0, -3),
		core.NewVec3(0.9, -0.9, -3),
		core.NewVec3(2, 0, -3),
		core.NewVec3(0, 1.5, -3),
		core.NewVec3(-0.4, 0.1, -3),
	}
	for _, target := range targets {
		ray := core.NewRay(origin, target.Subtract(origin))
		hitA, okA := IntersectTriangle(ray, ccw)
		hitB, okB := IntersectTriangle(ray, cw)
		if okA != okB {
			t.Errorf("Target %v: winding changed classification (%v vs %v)", target, okA, okB)
			continue
		}
		if okA && math.Abs(hitA.T-hitB.T) > 1e-9 {
			t.Errorf("Target %v: winding changed t (%f vs %f)", target, hitA.T, hitB.T)
		}
	}
}
