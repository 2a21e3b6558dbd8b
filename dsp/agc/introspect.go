package agc

import "github.com/cwbudde/algo-agc/dsp/core"

// Snapshot is a consistent view of the gain state.
type Snapshot struct {
	State       State
	Gain        float64
	TargetGain  float64
	HangCounter int
	Peak        float64
	// Filled is the number of live samples in the look-ahead window.
	Filled int
}

// GainDB returns the snapshot gain in dB.
func (s Snapshot) GainDB() float64 {
	return core.LinearToDB(s.Gain)
}

// Snapshot returns the current gain state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		State:       e.ctrl.state,
		Gain:        e.ctrl.current,
		TargetGain:  e.ctrl.target,
		HangCounter: e.ctrl.hang,
		Peak:        e.window.Peak(),
		Filled:      e.window.Filled(),
	}
}

// Config returns the sanitized configuration in effect.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Params returns the derived parameters in effect.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Latency returns the input-to-output delay in samples.
func (e *Engine) Latency() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delay.Cap()
}

// State returns the controller state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.state
}

// CurrentGain returns the linear gain applied to the last output sample.
func (e *Engine) CurrentGain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.current
}

// CurrentGainDB returns CurrentGain in dB.
func (e *Engine) CurrentGainDB() float64 {
	return core.LinearToDB(e.CurrentGain())
}
