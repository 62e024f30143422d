package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation lives in the fourth column
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	got := Translate(Vec3{10, 20, 30}).TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}

	got = Scale(Vec3{2, 2, 2}).TransformVec3(Vec3{1, 2, 3})
	want = Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformVec3 with scale: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	got := RotateY(float32(math.Pi / 2)).TransformVec3(Vec3{1, 0, 0})

	// A quarter turn about Y takes +X to -Z
	if !near(got, Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateX90(t *testing.T) {
	got := RotateX(float32(math.Pi / 2)).TransformVec3(Vec3{0, 1, 0})

	if !near(got, Vec3{0, 0, 1}) {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", got)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale first, then rotate, then translate.
	m := Compose(Vec3{100, 0, 0}, Vec3{0, float32(math.Pi / 2), 0}, Vec3{2, 2, 2})
	got := m.TransformVec3(Vec3{1, 0, 0})

	if !near(got, Vec3{100, 0, -2}) {
		t.Errorf("Compose: got %v, want (100, 0, -2)", got)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 50, 70}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	if got := view.TransformVec3(eye); !near(got, Vec3{}) {
		t.Errorf("LookAt: eye maps to %v, want origin", got)
	}

	// The target sits straight ahead on -Z in view space.
	got := view.TransformVec3(Vec3{})
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || got.Z >= 0 {
		t.Errorf("LookAt: target maps to %v, want (0, 0, -d)", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 1, 0.1, 1000)

	if abs(m[0]-1) > 0.001 || abs(m[5]-1) > 0.001 {
		t.Errorf("Perspective 90deg: focal terms (%f, %f), want (1, 1)", m[0], m[5])
	}
	if m[11] != -1 {
		t.Errorf("Perspective: m[11] = %f, want -1", m[11])
	}
}

func near(a, b Vec3) bool {
	return abs(a.X-b.X) < 0.001 && abs(a.Y-b.Y) < 0.001 && abs(a.Z-b.Z) < 0.001
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
