package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if math.Abs(a[i]) > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestStep(t *testing.T) {
	s := Step(0.01, 1.0, 3, 6)
	want := []float64{0.01, 0.01, 0.01, 1, 1, 1}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("Step[%d] = %v, want %v", i, s[i], want[i])
		}
	}
}

func TestComplexToneHasConstantMagnitude(t *testing.T) {
	tone := ComplexTone(1000, 48000, 0.25, 480)
	for i, v := range tone {
		if math.Abs(cmplx.Abs(v)-0.25) > 1e-12 {
			t.Fatalf("|tone[%d]| = %v, want 0.25", i, cmplx.Abs(v))
		}
	}
}
