// Package config loads the YAML configuration of the agcinfo tool.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-agc/dsp/agc"
	"github.com/cwbudde/algo-agc/dsp/core"
)

// File is the on-disk configuration.
type File struct {
	SampleRate float64          `yaml:"sample_rate" validate:"gt=0"`
	Preset     string           `yaml:"preset" validate:"omitempty,oneof=fast medium slow user off"`
	AGC        AGCConfig        `yaml:"agc"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AGCConfig mirrors agc.Config. Times are in milliseconds.
type AGCConfig struct {
	Enabled     bool    `yaml:"enabled"`
	TargetLevel float64 `yaml:"target_level" validate:"gte=-160,lte=0"`
	ManualGain  float64 `yaml:"manual_gain" validate:"gte=-160,ltefield=MaxGain"`
	MaxGain     float64 `yaml:"max_gain" validate:"gte=-19,lte=160"`
	AttackMs    float64 `yaml:"attack_ms" validate:"gt=0"`
	DecayMs     float64 `yaml:"decay_ms" validate:"gt=0"`
	HangMs      float64 `yaml:"hang_ms" validate:"gte=0"`
}

type ProcessingConfig struct {
	BlockSize int `yaml:"block_size" validate:"min=1,max=1048576"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used for keys missing from a file.
func Default() *File {
	a := agc.DefaultConfig(core.DefaultProcessorConfig().SampleRate)
	return &File{
		SampleRate: a.SampleRate,
		AGC: AGCConfig{
			Enabled:     a.Enabled,
			TargetLevel: a.TargetLevel,
			ManualGain:  a.ManualGain,
			MaxGain:     a.MaxGain,
			AttackMs:    a.AttackTime,
			DecayMs:     a.DecayTime,
			HangMs:      a.HangTime,
		},
		Processing: ProcessingConfig{BlockSize: core.DefaultProcessorConfig().BlockSize},
		Logging:    LoggingConfig{Level: "info"},
	}
}

// Load reads, parses and validates path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*File, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one invalid setting.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

// ValidationError lists every invalid setting of a file.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s %s (got %v)", fe.Field, fe.Message, fe.Value)
	}
	return "invalid config: " + strings.Join(parts, "; ")
}

// Validate checks ranges and enumerations. It returns a *ValidationError.
func (f *File) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	out := &ValidationError{}
	for _, e := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   strings.TrimPrefix(e.Namespace(), "File."),
			Message: formatValidationMessage(e),
			Value:   e.Value(),
		})
	}
	return out
}

func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "ltefield":
		return "must not exceed max_gain"
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

// EngineConfig converts the file to an engine configuration, applying the preset.
func (f *File) EngineConfig() agc.Config {
	cfg := agc.Config{
		SampleRate:  f.SampleRate,
		Enabled:     f.AGC.Enabled,
		TargetLevel: f.AGC.TargetLevel,
		ManualGain:  f.AGC.ManualGain,
		MaxGain:     f.AGC.MaxGain,
		AttackTime:  f.AGC.AttackMs,
		DecayTime:   f.AGC.DecayMs,
		HangTime:    f.AGC.HangMs,
	}
	if f.Preset == "" {
		return cfg
	}
	p, err := agc.ParsePreset(f.Preset)
	if err != nil {
		// Validate rejects unknown names.
		return cfg
	}
	return p.Apply(cfg)
}

// EngineOptions returns the engine options the file selects.
func (f *File) EngineOptions(logger *slog.Logger) []agc.EngineOption {
	return []agc.EngineOption{
		agc.WithBlockSize(f.Processing.BlockSize),
		agc.WithLogger(logger),
	}
}

// LogLevel returns the configured slog level.
func (f *File) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(f.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
