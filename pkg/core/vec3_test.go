package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"head on", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Reflect(tt.n)
			if !vecNear(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestVec3_RefractUnitRatio(t *testing.T) {
	n := NewVec3(0, 1, 0)
	in := NewVec3(1, -1, 0).Normalize()

	got := in.Refract(n, 1.0)
	if !vecNear(got, in) {
		t.Errorf("Ratio 1 should not bend the ray: expected %v, got %v", in, got)
	}
}

func TestVec3_RefractBendsTowardNormal(t *testing.T) {
	n := NewVec3(0, 1, 0)
	in := NewVec3(1, -1, 0).Normalize()

	got := in.Refract(n, 1.0/1.5)
	// Snell: sin(out) = sin(in) / 1.5
	sinIn := math.Sqrt(0.5)
	sinOut := got.Cross(n.Negate()).Length() / got.Length()
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Expected sin(out)=%f, got %f", sinIn/1.5, sinOut)
	}
	if got.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", got)
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-7, 0, 0).NearZero() {
		t.Error("Expected 1e-7 component to not be near zero")
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := NewVec3(0, 0, 0).Normalize(); got != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	if got := ray.At(1.5); !vecNear(got, NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
}
