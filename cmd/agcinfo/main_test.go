package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-agc/dsp/agc"
	"github.com/cwbudde/algo-agc/internal/config"
)

func TestBuildConfigOverridesOnlySetFlags(t *testing.T) {
	file := config.Default()
	file.AGC.MaxGain = 50

	o := options{rate: 8000, attack: 4, maxGain: 99, preset: "slow"}
	cfg, err := buildConfig(file, o, map[string]bool{"rate": true, "attack": true, "preset": true})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.SampleRate != 8000 || cfg.AttackTime != 4 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.MaxGain != 50 {
		t.Fatalf("MaxGain = %v, want file value 50", cfg.MaxGain)
	}
	if cfg.DecayTime != 2000 || !cfg.Enabled {
		t.Fatalf("preset not applied: %+v", cfg)
	}
}

func TestBuildConfigRejectsUnknownPreset(t *testing.T) {
	_, err := buildConfig(config.Default(), options{preset: "turbo"}, map[string]bool{"preset": true})
	if !errors.Is(err, agc.ErrUnknownPreset) {
		t.Fatalf("error = %v, want ErrUnknownPreset", err)
	}
}

func TestSimulateBurst(t *testing.T) {
	cfg := agc.DefaultConfig(8000).With(agc.WithMaxGain(60), agc.WithHang(100))
	e := agc.New(cfg)

	rows, err := simulate(e, "burst", 2000, 20)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("got %d rows, want 20", len(rows))
	}

	for i, r := range rows {
		if r.outPeak > cfg.TargetLevel+0.5 {
			t.Fatalf("row %d: output peak %.2f dBFS above target", i, r.outPeak)
		}
	}
	// Gain drops during the burst and recovers afterwards.
	if rows[7].gainDB >= rows[3].gainDB {
		t.Fatalf("gain during burst %.2f dB not below quiet gain %.2f dB", rows[7].gainDB, rows[3].gainDB)
	}
	if rows[19].gainDB <= rows[9].gainDB {
		t.Fatalf("gain did not recover: %.2f dB -> %.2f dB", rows[9].gainDB, rows[19].gainDB)
	}
}

func TestSimulateUnknownSignal(t *testing.T) {
	_, err := simulate(agc.New(agc.DefaultConfig(8000)), "chirp", 100, 4)
	if !errors.Is(err, errUnknownSignal) {
		t.Fatalf("error = %v, want errUnknownSignal", err)
	}
}

func TestPrintParams(t *testing.T) {
	var buf bytes.Buffer
	e := agc.New(agc.DefaultConfig(48000).With(agc.WithAttack(2)))
	if err := printParams(&buf, e); err != nil {
		t.Fatalf("printParams() error = %v", err)
	}
	for _, want := range []string{"automatic", "96 samples", "-6.0 dBFS"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintRowsSilence(t *testing.T) {
	rows, err := simulate(agc.New(agc.DefaultConfig(8000)), "silence", 100, 2)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	var buf bytes.Buffer
	if err := printRows(&buf, rows); err != nil {
		t.Fatalf("printRows() error = %v", err)
	}
	if !strings.Contains(buf.String(), "-inf") {
		t.Fatalf("silent rows should print -inf:\n%s", buf.String())
	}
}

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer
	printPresets(&buf)
	out := buf.String()
	for _, want := range []string{"fast", "decay 100 ms", "off", "manual gain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("preset list missing %q:\n%s", want, out)
		}
	}
}

func TestBuildConfigFlagsOverridePreset(t *testing.T) {
	o := options{preset: "fast", decay: 50, disabled: true}
	cfg, err := buildConfig(config.Default(), o, map[string]bool{"preset": true, "decay": true, "off": true})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if cfg.DecayTime != 50 {
		t.Fatalf("DecayTime = %v, want -decay value 50 over the preset", cfg.DecayTime)
	}
	if cfg.Enabled {
		t.Fatal("Enabled = true, want -off to override the preset")
	}
}
