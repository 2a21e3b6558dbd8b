package signal

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-agc/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))
	if g1.Seed() != 42 {
		t.Fatalf("Seed() = %d, want 42", g1.Seed())
	}

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d] = %v outside [-1, 1]", i, n1[i])
		}
	}
}

func TestComplexToneMagnitude(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))
	x, err := g.ComplexTone(1000, 0.25, 64)
	if err != nil {
		t.Fatalf("ComplexTone() error = %v", err)
	}
	for i, v := range x {
		if math.Abs(cmplx.Abs(v)-0.25) > 1e-12 {
			t.Fatalf("|x[%d]| = %v, want 0.25", i, cmplx.Abs(v))
		}
	}
	// 1 kHz at 8 kHz is an eighth of a turn per sample.
	if math.Abs(imag(x[4])) > 1e-12 || math.Abs(real(x[4])+0.25) > 1e-12 {
		t.Fatalf("x[4] = %v, want -0.25", x[4])
	}
}

func TestStep(t *testing.T) {
	g := NewGenerator()
	x, err := g.Step(0.1, 0.9, 3, 5)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	want := []float64{0.1, 0.1, 0.1, 0.9, 0.9}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	if _, err := g.Step(0, 1, 6, 5); err == nil {
		t.Fatal("expected error for step index past the end")
	}
}

func TestToneBurst(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	x, err := g.ToneBurst(1000, 0.01, 1, 480, 960, 1440)
	if err != nil {
		t.Fatalf("ToneBurst() error = %v", err)
	}

	tests := []struct {
		name       string
		start, end int
		peak       float64
	}{
		{"before", 0, 480, 0.01},
		{"burst", 480, 960, 1},
		{"after", 960, 1440, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeakAbs(x[tt.start:tt.end])
			if math.Abs(got-tt.peak) > 1e-3*tt.peak {
				t.Fatalf("peak = %v, want %v", got, tt.peak)
			}
		})
	}

	if _, err := g.ToneBurst(1000, 0, 1, 10, 5, 20); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestGeneratorRejectsBadInput(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(1000, 1, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := g.ComplexTone(1000, 1, -1); err == nil {
		t.Fatal("expected error for negative length")
	}
	if _, err := g.WhiteNoise(-1, 8); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}

	if _, err := Normalize(nil, 1); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Normalize(nil) error = %v, want ErrEmpty", err)
	}
}

func TestPeakDB(t *testing.T) {
	if got := PeakDB([]float64{0.1, -0.5}); math.Abs(got-core.LinearToDB(0.5)) > 1e-12 {
		t.Fatalf("PeakDB = %v", got)
	}
	if got := PeakDB(make([]float64, 4)); !math.IsInf(got, -1) {
		t.Fatalf("PeakDB(silence) = %v, want -Inf", got)
	}
}
