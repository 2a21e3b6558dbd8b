package peak

import "github.com/cwbudde/algo-agc/dsp/delay"

// Window is a sliding-window maximum over the last Cap magnitudes.
type Window struct {
	mags *delay.Ring[float64]

	// Deque of push sequence numbers whose magnitudes are strictly
	// decreasing from head to tail. Stored in a ring of Cap slots.
	deque []uint64
	head  int
	count int
	seq   uint64
}

// NewWindow returns an empty window. Capacities below 1 are raised to 1.
func NewWindow(capacity int) *Window {
	w := &Window{mags: delay.New[float64](capacity)}
	w.deque = make([]uint64, w.mags.Cap())
	return w
}

// Cap returns the window length in samples.
func (w *Window) Cap() int {
	return w.mags.Cap()
}

// Filled returns the number of magnitudes currently in the window.
func (w *Window) Filled() int {
	return w.mags.Filled()
}

// Push adds mag to the window and returns the magnitude that left it.
// Negative and NaN magnitudes are stored as 0.
func (w *Window) Push(mag float64) float64 {
	if !(mag > 0) {
		mag = 0
	}

	evicted := w.mags.Push(mag)
	w.seq++
	size := len(w.deque)

	// Drop the head once it has slid out of the window.
	if w.count > 0 && w.seq-w.deque[w.head] >= uint64(size) {
		w.head++
		if w.head == size {
			w.head = 0
		}
		w.count--
	}

	// Drop tail entries dominated by the new magnitude.
	for w.count > 0 {
		tail := w.slot(w.count - 1)
		if w.valueOf(w.deque[tail]) > mag {
			break
		}
		w.count--
	}

	w.deque[w.slot(w.count)] = w.seq
	w.count++

	return evicted
}

// Peak returns the maximum magnitude in the window, or 0 when empty.
func (w *Window) Peak() float64 {
	if w.count == 0 {
		return 0
	}
	return w.valueOf(w.deque[w.head])
}

// Resize reallocates the window to a new capacity and discards history.
func (w *Window) Resize(capacity int) {
	w.mags.Resize(capacity)
	if len(w.deque) != w.mags.Cap() {
		w.deque = make([]uint64, w.mags.Cap())
	}
	w.resetDeque()
}

// Reset clears the window without reallocating.
func (w *Window) Reset() {
	w.mags.Reset()
	w.resetDeque()
}

func (w *Window) resetDeque() {
	w.head = 0
	w.count = 0
	w.seq = 0
}

func (w *Window) slot(i int) int {
	s := w.head + i
	if s >= len(w.deque) {
		s -= len(w.deque)
	}
	return s
}

func (w *Window) valueOf(seq uint64) float64 {
	return w.mags.At(int(w.seq - seq))
}
