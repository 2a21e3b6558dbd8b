package agc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognized names.
var ErrUnknownPreset = errors.New("agc: unknown preset")

// Preset is a named decay profile.
type Preset int

const (
	PresetFast Preset = iota
	PresetMedium
	PresetSlow
	// PresetUser enables AGC and keeps the configured times.
	PresetUser
	// PresetOff disables AGC; the manual gain applies.
	PresetOff
)

var presetNames = [...]string{
	PresetFast:   "fast",
	PresetMedium: "medium",
	PresetSlow:   "slow",
	PresetUser:   "user",
	PresetOff:    "off",
}

// Presets lists all presets in display order.
func Presets() []Preset {
	return []Preset{PresetFast, PresetMedium, PresetSlow, PresetUser, PresetOff}
}

func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// DecayTime returns the preset decay in milliseconds, or 0 when the preset
// does not set one.
func (p Preset) DecayTime() float64 {
	switch p {
	case PresetFast:
		return 100
	case PresetMedium:
		return 500
	case PresetSlow:
		return 2000
	default:
		return 0
	}
}

// Apply returns cfg adjusted for the preset.
func (p Preset) Apply(cfg Config) Config {
	switch p {
	case PresetFast, PresetMedium, PresetSlow:
		cfg.Enabled = true
		cfg.DecayTime = p.DecayTime()
	case PresetUser:
		cfg.Enabled = true
	case PresetOff:
		cfg.Enabled = false
	}
	return cfg
}

// ParsePreset resolves a case-insensitive preset name.
func ParsePreset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
