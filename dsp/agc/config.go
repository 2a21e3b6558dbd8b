package agc

import (
	"math"

	"github.com/cwbudde/algo-agc/dsp/core"
)

// Limits applied by Config.Sanitize.
const (
	// MinGainDB is the lowest gain the automatic path applies.
	MinGainDB = -20.0

	MinSampleRate  = 1.0
	MinTimeMs      = 0.001
	MinTargetLevel = -160.0
	MaxTargetLevel = 0.0
	MaxGainCeiling = 160.0
	MinManualGain  = -160.0
)

const (
	defaultSampleRate  = 48000.0
	defaultTargetLevel = -6.0
	defaultManualGain  = 0.0
	defaultMaxGain     = 100.0
	defaultAttackMs    = 20.0
	defaultDecayMs     = 500.0
	defaultHangMs      = 0.0
)

// Config is the user-facing AGC configuration. Levels are in dB, times in
// milliseconds.
type Config struct {
	SampleRate float64
	Enabled    bool
	// TargetLevel is the desired output magnitude in dBFS.
	TargetLevel float64
	// ManualGain is applied when Enabled is false.
	ManualGain float64
	// MaxGain is the gain ceiling of the automatic path.
	MaxGain    float64
	AttackTime float64
	DecayTime  float64
	HangTime   float64
}

// DefaultConfig returns an enabled medium-speed configuration.
func DefaultConfig(sampleRate float64) Config {
	return Config{
		SampleRate:  sampleRate,
		Enabled:     true,
		TargetLevel: defaultTargetLevel,
		ManualGain:  defaultManualGain,
		MaxGain:     defaultMaxGain,
		AttackTime:  defaultAttackMs,
		DecayTime:   defaultDecayMs,
		HangTime:    defaultHangMs,
	}
}

// Sanitize returns c with every field moved to its nearest legal value, and
// the names of the fields that were changed.
//
// Non-finite values fall back to defaults. MaxGain is kept above MinGainDB and
// ManualGain is kept at or below MaxGain.
func (c Config) Sanitize() (Config, []string) {
	var clamped []string
	fix := func(name string, field *float64, fallback, lo, hi float64) {
		v := *field
		if !core.IsFinite(v) {
			v = fallback
		}
		v = core.Clamp(v, lo, hi)
		if v != *field {
			clamped = append(clamped, name)
			*field = v
		}
	}

	fix("SampleRate", &c.SampleRate, defaultSampleRate, MinSampleRate, math.MaxFloat64)
	fix("TargetLevel", &c.TargetLevel, defaultTargetLevel, MinTargetLevel, MaxTargetLevel)
	fix("MaxGain", &c.MaxGain, defaultMaxGain, MinGainDB+1, MaxGainCeiling)
	fix("ManualGain", &c.ManualGain, defaultManualGain, MinManualGain, c.MaxGain)
	fix("AttackTime", &c.AttackTime, defaultAttackMs, MinTimeMs, math.MaxFloat64)
	fix("DecayTime", &c.DecayTime, defaultDecayMs, MinTimeMs, math.MaxFloat64)
	fix("HangTime", &c.HangTime, defaultHangMs, 0, math.MaxFloat64)

	return c, clamped
}

// Mode reports which gain path the configuration selects.
func (c Config) Mode() Mode {
	if c.Enabled {
		return ModeAutomatic
	}
	return ModeManual
}

// Mode selects between computed and fixed gain.
type Mode int

const (
	// ModeAutomatic runs the attack/hang/decay state machine.
	ModeAutomatic Mode = iota
	// ModeManual applies Config.ManualGain.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAutomatic:
		return "automatic"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}
