package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross x y", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"cross y x", NewVec3(0, 1, 0).Cross(NewVec3(1, 0, 0)), NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
}

func TestVec3_DoesNotMutateReceiver(t *testing.T) {
	v := NewVec3(3, 4, 0)
	_ = v.Normalize()
	_ = v.Add(NewVec3(1, 1, 1))
	_ = v.Multiply(10)
	if v != NewVec3(3, 4, 0) {
		t.Errorf("Receiver was mutated: %v", v)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 4, 0).Normalize()
	if !vecNear(n, NewVec3(0.6, 0.8, 0), 1e-12) {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", n)
	}
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Zero vector should normalize to zero, got %v", zero)
	}
}

func TestVec3_Reflect(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	// View vector coming in at 45 degrees from +x side
	v := NewVec3(1, 1, 0).Normalize()
	r := v.Reflect(normal)
	if !vecNear(r, NewVec3(-1, 1, 0).Normalize(), 1e-12) {
		t.Errorf("Expected mirrored direction, got %v", r)
	}

	// Head-on view reflects onto itself
	if got := normal.Reflect(normal); !vecNear(got, normal, 1e-12) {
		t.Errorf("Expected %v, got %v", normal, got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{-3, 0},
		{0, 0},
		{128.4, 128.4},
		{255, 255},
		{1e9, 255},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in, 0, 255); got != tt.expected {
			t.Errorf("Clamp(%f) = %f, expected %f", tt.in, got, tt.expected)
		}
	}

	c := NewVec3(-1, 300, 12).Clamp(0, 255)
	if c != NewVec3(0, 255, 12) {
		t.Errorf("Expected (0, 255, 12), got %v", c)
	}
}
