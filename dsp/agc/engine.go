package agc

import (
	"log/slog"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-agc/dsp/core"
	"github.com/cwbudde/algo-agc/dsp/delay"
	"github.com/cwbudde/algo-agc/dsp/peak"
)

// Engine is a look-ahead AGC. All methods are safe for concurrent use; a
// reconfiguration waits for the block being processed to finish.
//
// Samples are stored as complex128 regardless of the entry point: real mono
// input uses the real part, stereo input packs left/right into real/imag.
type Engine struct {
	mu sync.Mutex

	cfg    Config
	params Params
	ctrl   controller

	delay  *delay.Ring[complex128]
	window *peak.Window

	// Per-chunk scratch, sized at construction.
	re, im, mag, gains []float64

	logger *slog.Logger
}

// New returns an engine configured with cfg. Invalid fields are clamped.
func New(cfg Config, opts ...EngineOption) *Engine {
	o := engineOptions{
		proc:   core.DefaultProcessorConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	n := o.proc.BlockSize
	e := &Engine{
		delay:  delay.New[complex128](1),
		window: peak.NewWindow(1),
		re:     core.EnsureLen[float64](nil, n),
		im:     core.EnsureLen[float64](nil, n),
		mag:    core.EnsureLen[float64](nil, n),
		gains:  core.EnsureLen[float64](nil, n),
		logger: o.logger,
	}
	e.setParameters(cfg, true)
	return e
}

// SetParameters applies cfg. Out-of-range fields are clamped, never
// rejected.
//
// The delay and peak buffers are reallocated, discarding history, only when
// the look-ahead window length changes. The current gain is kept so the
// change is glitch-free, unless force is set: then buffers are cleared and
// the controller restarts at the gain ceiling (or the manual gain).
func (e *Engine) SetParameters(cfg Config, force bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setParameters(cfg, force)
}

// Update applies opts on top of the current configuration.
func (e *Engine) Update(opts ...Option) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setParameters(e.cfg.With(opts...), false)
}

func (e *Engine) setParameters(cfg Config, force bool) {
	cfg, clamped := cfg.Sanitize()
	p := derive(cfg)

	if force || p.Window != e.delay.Cap() {
		e.delay.Resize(p.Window)
		e.window.Resize(p.Window)
	}

	prevMode := e.cfg.Mode()
	e.cfg = cfg
	e.params = p
	e.ctrl.p = p

	switch {
	case force:
		e.ctrl.reset(cfg.Mode())
	case cfg.Mode() == ModeManual:
		e.ctrl.enterManual()
	case prevMode == ModeManual:
		e.ctrl.leaveManual()
	}

	if len(clamped) > 0 {
		e.logger.Warn("agc configuration clamped", "fields", clamped)
	}
	e.logger.Debug("agc parameters",
		"mode", cfg.Mode(),
		"sample_rate", cfg.SampleRate,
		"target_level_db", cfg.TargetLevel,
		"max_gain_db", cfg.MaxGain,
		"window", p.Window,
		"attack_step_db", p.AttackStepDB(),
		"decay_step_db", p.DecayStepDB(),
		"hang_samples", p.HangSamples,
		"force", force,
	)
}

// ProcessComplex writes the gain-controlled, delayed input to out. It
// processes min(len(out), len(in)) samples; out may alias in.
func (e *Engine) ProcessComplex(out, in []complex128) {
	n := min(len(out), len(in))
	if n == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for start := 0; start < n; start += len(e.gains) {
		end := min(start+len(e.gains), n)
		e.processComplexChunk(out[start:end], in[start:end])
	}
}

// ProcessReal is ProcessComplex for real mono samples.
func (e *Engine) ProcessReal(out, in []float64) {
	n := min(len(out), len(in))
	if n == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for start := 0; start < n; start += len(e.gains) {
		end := min(start+len(e.gains), n)
		e.processRealChunk(out[start:end], in[start:end])
	}
}

// ProcessStereo applies one shared gain to both channels, driven by the
// louder channel so the stereo image is preserved.
func (e *Engine) ProcessStereo(outL, outR, inL, inR []float64) {
	n := min(len(outL), len(outR), len(inL), len(inR))
	if n == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for start := 0; start < n; start += len(e.gains) {
		end := min(start+len(e.gains), n)
		e.processStereoChunk(outL[start:end], outR[start:end], inL[start:end], inR[start:end])
	}
}

func (e *Engine) processComplexChunk(out, in []complex128) {
	m := len(in)
	re, im, mag, gains := e.re[:m], e.im[:m], e.mag[:m], e.gains[:m]

	for i, s := range in {
		re[i] = real(s)
		im[i] = imag(s)
	}
	vecmath.Magnitude(mag, re, im)

	for i, s := range in {
		d := e.push(s, mag[i])
		gains[i] = e.nextGain()
		re[i] = real(d)
		im[i] = imag(d)
	}

	vecmath.MulBlockInPlace(re, gains)
	vecmath.MulBlockInPlace(im, gains)
	for i := range out {
		out[i] = complex(re[i], im[i])
	}
}

func (e *Engine) processRealChunk(out, in []float64) {
	m := len(in)
	re, gains := e.re[:m], e.gains[:m]

	for i, s := range in {
		d := e.push(complex(s, 0), math.Abs(s))
		gains[i] = e.nextGain()
		re[i] = real(d)
	}

	vecmath.MulBlock(out, re, gains)
}

func (e *Engine) processStereoChunk(outL, outR, inL, inR []float64) {
	m := len(inL)
	re, im, gains := e.re[:m], e.im[:m], e.gains[:m]

	for i := range m {
		l, r := inL[i], inR[i]
		d := e.push(complex(l, r), math.Max(math.Abs(l), math.Abs(r)))
		gains[i] = e.nextGain()
		re[i] = real(d)
		im[i] = imag(d)
	}

	vecmath.MulBlock(outL, re, gains)
	vecmath.MulBlock(outR, im, gains)
}

// push feeds one sample into the look-ahead buffers and returns the sample
// leaving the delay line.
func (e *Engine) push(s complex128, mag float64) complex128 {
	e.window.Push(mag)
	return e.delay.Push(s)
}

// nextGain is the mode selector: both paths see the same buffers, so latency
// does not depend on the mode.
func (e *Engine) nextGain() float64 {
	if e.cfg.Mode() == ModeManual {
		return e.ctrl.manual()
	}
	return e.ctrl.next(e.window.Peak())
}

// Reset clears buffers and restarts the controller without changing the
// configuration.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setParameters(e.cfg, true)
}
