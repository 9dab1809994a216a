package core

import "testing"

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))

	if got := ray.At(0); got != ray.Origin {
		t.Errorf("At(0) should be the origin, got %v", got)
	}
	if got := ray.At(1.5); got != NewVec3(1, 2, 0) {
		t.Errorf("Expected (1, 2, 0), got %v", got)
	}
}

func TestRay_AtIsMonotonic(t *testing.T) {
	rays := []Ray{
		NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)),
		NewRay(NewVec3(-4, 2, 9), NewVec3(0.1, -3, 7)),
		NewRay(NewVec3(5, 5, 5), NewVec3(-1e-3, 0, 0)),
	}
	for _, ray := range rays {
		prev := 0.0
		for _, tv := range []float64{0.25, 1, 3.5, 100} {
			dist := ray.At(tv).Subtract(ray.Origin).Length()
			if dist <= prev {
				t.Errorf("Ray %v: distance at t=%f (%f) not greater than %f", ray, tv, dist, prev)
			}
			prev = dist
		}
	}
}
