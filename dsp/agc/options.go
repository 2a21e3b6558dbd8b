package agc

import (
	"log/slog"

	"github.com/cwbudde/algo-agc/dsp/core"
)

// Option mutates a Config. Options are applied in order.
type Option func(*Config)

// With returns a copy of c with opts applied.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(hz float64) Option {
	return func(c *Config) { c.SampleRate = hz }
}

// WithEnabled switches between automatic and manual gain.
func WithEnabled(enabled bool) Option {
	return func(c *Config) { c.Enabled = enabled }
}

// WithTargetLevel sets the target output level in dBFS.
func WithTargetLevel(dB float64) Option {
	return func(c *Config) { c.TargetLevel = dB }
}

// WithManualGain sets the manual-mode gain in dB.
func WithManualGain(dB float64) Option {
	return func(c *Config) { c.ManualGain = dB }
}

// WithMaxGain sets the automatic gain ceiling in dB.
func WithMaxGain(dB float64) Option {
	return func(c *Config) { c.MaxGain = dB }
}

// WithAttack sets the attack (look-ahead) time in milliseconds.
func WithAttack(ms float64) Option {
	return func(c *Config) { c.AttackTime = ms }
}

// WithDecay sets the decay time in milliseconds.
func WithDecay(ms float64) Option {
	return func(c *Config) { c.DecayTime = ms }
}

// WithHang sets the hang time in milliseconds.
func WithHang(ms float64) Option {
	return func(c *Config) { c.HangTime = ms }
}

// WithPreset applies a preset.
func WithPreset(p Preset) Option {
	return func(c *Config) { *c = p.Apply(*c) }
}

// EngineOption configures an Engine at construction.
type EngineOption func(*engineOptions)

type engineOptions struct {
	proc   core.ProcessorConfig
	logger *slog.Logger
}

// WithBlockSize sets the scratch length. Longer blocks are processed in
// chunks; it does not limit the block length callers may pass.
func WithBlockSize(n int) EngineOption {
	return func(o *engineOptions) { core.WithBlockSize(n)(&o.proc) }
}

// WithLogger sets the logger used on reconfiguration. Processing never logs.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
