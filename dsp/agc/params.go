package agc

import (
	"math"

	"github.com/cwbudde/algo-agc/dsp/core"
)

// Params holds the per-sample constants derived from a Config.
//
// Gain moves in equal dB steps. AttackStep spans the full automatic range
// (MaxGain down to MinGainDB) in Window samples, so any attack completes
// within the attack time; DecayStep spans the same range in DecaySamples.
type Params struct {
	// Window is the look-ahead length and the engine latency in samples.
	Window       int
	DecaySamples int
	HangSamples  int

	TargetLinear  float64
	MaxGainLinear float64
	GainFloor     float64
	ManualLinear  float64

	// AttackStep < 1 and DecayStep > 1 are per-sample gain multipliers.
	AttackStep float64
	DecayStep  float64
}

// Derive sanitizes cfg and computes its derived parameters.
func Derive(cfg Config) Params {
	cfg, _ = cfg.Sanitize()
	return derive(cfg)
}

func derive(cfg Config) Params {
	window := max(core.MsToSamples(cfg.AttackTime, cfg.SampleRate), 1)
	decay := max(core.MsToSamples(cfg.DecayTime, cfg.SampleRate), 1)
	rangeDB := cfg.MaxGain - MinGainDB

	return Params{
		Window:        window,
		DecaySamples:  decay,
		HangSamples:   core.MsToSamples(cfg.HangTime, cfg.SampleRate),
		TargetLinear:  core.DBToLinear(cfg.TargetLevel),
		MaxGainLinear: core.DBToLinear(cfg.MaxGain),
		GainFloor:     core.DBToLinear(MinGainDB),
		ManualLinear:  core.DBToLinear(cfg.ManualGain),
		AttackStep:    core.DBToLinear(-rangeDB / float64(window)),
		DecayStep:     core.DBToLinear(rangeDB / float64(decay)),
	}
}

// AttackStepDB returns the attack slope in dB per sample (negative).
func (p Params) AttackStepDB() float64 {
	return core.LinearToDB(p.AttackStep)
}

// DecayStepDB returns the decay slope in dB per sample.
func (p Params) DecayStepDB() float64 {
	return core.LinearToDB(p.DecayStep)
}

// AttackSamples returns how many samples an attack of deltaDB takes.
func (p Params) AttackSamples(deltaDB float64) int {
	return stepsFor(deltaDB, -p.AttackStepDB())
}

// DecaySamplesFor returns how many samples a recovery of deltaDB takes.
func (p Params) DecaySamplesFor(deltaDB float64) int {
	return stepsFor(deltaDB, p.DecayStepDB())
}

func stepsFor(deltaDB, stepDB float64) int {
	deltaDB = math.Abs(deltaDB)
	if deltaDB == 0 || stepDB <= 0 {
		return 0
	}
	return int(math.Ceil(deltaDB / stepDB))
}
