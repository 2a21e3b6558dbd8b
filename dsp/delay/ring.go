package delay

import "github.com/cwbudde/algo-agc/dsp/core"

// Ring is a circular delay line of fixed capacity.
type Ring[T any] struct {
	buf    []T
	pos    int
	filled int
}

// New returns a zeroed ring. Capacities below 1 are raised to 1.
func New[T any](capacity int) *Ring[T] {
	return &Ring[T]{buf: make([]T, max(capacity, 1))}
}

// Cap returns the ring capacity, which equals its delay in samples.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Filled returns how many live values the ring holds. It saturates at Cap.
func (r *Ring[T]) Filled() int {
	return r.filled
}

// Full reports whether Cap values have been pushed since the last reset.
func (r *Ring[T]) Full() bool {
	return r.filled == len(r.buf)
}

// Push stores v and returns the value written Cap pushes ago.
func (r *Ring[T]) Push(v T) T {
	out := r.buf[r.pos]
	r.buf[r.pos] = v
	r.pos++
	if r.pos == len(r.buf) {
		r.pos = 0
	}
	if r.filled < len(r.buf) {
		r.filled++
	}
	return out
}

// At returns the value pushed age pushes ago; age 0 is the newest value.
// Ages outside [0, Cap) wrap around.
func (r *Ring[T]) At(age int) T {
	size := len(r.buf)
	idx := (r.pos - 1 - age%size) % size
	if idx < 0 {
		idx += size
	}
	return r.buf[idx]
}

// Oldest returns the value the next Push will evict.
func (r *Ring[T]) Oldest() T {
	return r.buf[r.pos]
}

// Resize reallocates the ring with a new capacity (minimum 1). History is
// discarded even when the capacity is unchanged.
func (r *Ring[T]) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(r.buf) {
		r.Reset()
		return
	}
	r.buf = make([]T, capacity)
	r.pos = 0
	r.filled = 0
}

// Reset clears ring state without reallocating.
func (r *Ring[T]) Reset() {
	core.Zero(r.buf)
	r.pos = 0
	r.filled = 0
}
