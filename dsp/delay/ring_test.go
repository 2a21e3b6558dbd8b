package delay

import "testing"

func TestNewClampsCapacity(t *testing.T) {
	for _, c := range []int{-3, 0, 1} {
		r := New[float64](c)
		if r.Cap() != 1 {
			t.Fatalf("New(%d).Cap() = %d, want 1", c, r.Cap())
		}
	}
}

func TestPushReturnsValueFromCapPushesAgo(t *testing.T) {
	r := New[float64](3)

	want := []float64{0, 0, 0, 1, 2, 3, 4}
	for i, w := range want {
		got := r.Push(float64(i + 1))
		if got != w {
			t.Fatalf("push %d: got %v, want %v", i, got, w)
		}
	}
}

func TestCapacityOneIsSingleSampleDelay(t *testing.T) {
	r := New[complex128](1)

	if got := r.Push(1 + 1i); got != 0 {
		t.Fatalf("first push = %v, want 0", got)
	}
	if got := r.Push(2); got != 1+1i {
		t.Fatalf("second push = %v, want 1+1i", got)
	}
}

func TestFilledSaturates(t *testing.T) {
	r := New[int](4)
	for i := range 10 {
		r.Push(i)
		want := min(i+1, 4)
		if r.Filled() != want {
			t.Fatalf("after %d pushes Filled() = %d, want %d", i+1, r.Filled(), want)
		}
	}
	if !r.Full() {
		t.Fatal("expected full ring")
	}
}

func TestAtAndOldest(t *testing.T) {
	r := New[int](4)
	for i := 1; i <= 6; i++ {
		r.Push(i)
	}

	for age, want := range []int{6, 5, 4, 3} {
		if got := r.At(age); got != want {
			t.Fatalf("At(%d) = %d, want %d", age, got, want)
		}
	}
	if got := r.Oldest(); got != 3 {
		t.Fatalf("Oldest() = %d, want 3", got)
	}
}

func TestResizeDiscardsHistory(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		resized int
		wantCap int
	}{
		{name: "grow", initial: 2, resized: 8, wantCap: 8},
		{name: "shrink", initial: 8, resized: 3, wantCap: 3},
		{name: "same", initial: 4, resized: 4, wantCap: 4},
		{name: "zero", initial: 4, resized: 0, wantCap: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New[float64](tt.initial)
			for i := range 20 {
				r.Push(float64(i + 1))
			}

			r.Resize(tt.resized)
			if r.Cap() != tt.wantCap {
				t.Fatalf("Cap() = %d, want %d", r.Cap(), tt.wantCap)
			}
			if r.Filled() != 0 {
				t.Fatalf("Filled() = %d, want 0", r.Filled())
			}
			for i := range tt.wantCap {
				if got := r.Push(-1); got != 0 {
					t.Fatalf("push %d after resize = %v, want 0", i, got)
				}
			}
		})
	}
}

func TestResetRestoresDeterministicState(t *testing.T) {
	r := New[float64](5)
	in := []float64{0.1, -0.4, 0.9, 0.3, -0.2, 0.7, 0.5, 0.0}

	out1 := make([]float64, len(in))
	for i, v := range in {
		out1[i] = r.Push(v)
	}

	r.Reset()

	for i, v := range in {
		if got := r.Push(v); got != out1[i] {
			t.Fatalf("sample %d mismatch after reset: got %v want %v", i, got, out1[i])
		}
	}
}

func BenchmarkRingPush(b *testing.B) {
	r := New[complex128](96)
	s := complex(0.5, -0.25)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s = r.Push(s)
	}
}
