// Command agcinfo prints the derived parameters of an AGC configuration and
// runs it against synthetic test signals.
//
// Usage:
//
//	agcinfo [flags]
//
// Flags override values from -config. Without -simulate it prints only the
// derived parameters.
//
// Examples:
//
//	agcinfo -preset fast
//	agcinfo -rate 96000 -attack 5 -hang 250
//	agcinfo -config agc.yaml -simulate burst
//	agcinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-agc/dsp/agc"
	"github.com/cwbudde/algo-agc/dsp/core"
	"github.com/cwbudde/algo-agc/dsp/signal"
	"github.com/cwbudde/algo-agc/internal/config"
	"github.com/cwbudde/algo-agc/stats/level"
)

type options struct {
	configPath string
	preset     string
	rate       float64
	target     float64
	maxGain    float64
	manualGain float64
	attack     float64
	decay      float64
	hang       float64
	disabled   bool
	list       bool
	simulate   string
	durationMs float64
	rows       int
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&o.preset, "preset", "", "preset name (see -list)")
	flag.Float64Var(&o.rate, "rate", 0, "sample rate in Hz")
	flag.Float64Var(&o.target, "target", 0, "target level in dBFS")
	flag.Float64Var(&o.maxGain, "max-gain", 0, "gain ceiling in dB")
	flag.Float64Var(&o.manualGain, "manual-gain", 0, "manual gain in dB")
	flag.Float64Var(&o.attack, "attack", 0, "attack (look-ahead) time in ms")
	flag.Float64Var(&o.decay, "decay", 0, "decay time in ms")
	flag.Float64Var(&o.hang, "hang", 0, "hang time in ms")
	flag.BoolVar(&o.disabled, "off", false, "disable automatic gain (manual gain applies)")
	flag.BoolVar(&o.list, "list", false, "list available presets")
	flag.StringVar(&o.simulate, "simulate", "", "run a synthetic signal: step, burst or silence")
	flag.Float64Var(&o.durationMs, "duration", 2000, "simulation length in ms")
	flag.IntVar(&o.rows, "rows", 20, "number of simulation report rows")
	flag.BoolVar(&o.verbose, "v", false, "log engine reconfiguration")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: agcinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints derived AGC parameters and simulates the gain on test signals.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  agcinfo -preset fast\n")
		fmt.Fprintf(os.Stderr, "  agcinfo -config agc.yaml -simulate burst\n")
		fmt.Fprintf(os.Stderr, "  agcinfo -list\n")
	}
	flag.Parse()

	if o.list {
		printPresets(os.Stdout)
		return
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	file, err := loadFile(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logLevel := file.LogLevel()
	if o.verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := buildConfig(file, o, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	e := agc.New(cfg, file.EngineOptions(logger)...)
	if err := printParams(os.Stdout, e); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if o.simulate == "" {
		return
	}
	rows, err := simulate(e, o.simulate, o.durationMs, o.rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	if err := printRows(os.Stdout, rows); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadFile(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildConfig layers the explicitly set flags over the file.
func buildConfig(file *config.File, o options, set map[string]bool) (agc.Config, error) {
	cfg := file.EngineConfig()

	// The preset goes first so explicit flags override it.
	var opts []agc.Option
	if set["preset"] {
		p, err := agc.ParsePreset(o.preset)
		if err != nil {
			return agc.Config{}, err
		}
		opts = append(opts, agc.WithPreset(p))
	}
	if set["rate"] {
		opts = append(opts, agc.WithSampleRate(o.rate))
	}
	if set["target"] {
		opts = append(opts, agc.WithTargetLevel(o.target))
	}
	if set["max-gain"] {
		opts = append(opts, agc.WithMaxGain(o.maxGain))
	}
	if set["manual-gain"] {
		opts = append(opts, agc.WithManualGain(o.manualGain))
	}
	if set["attack"] {
		opts = append(opts, agc.WithAttack(o.attack))
	}
	if set["decay"] {
		opts = append(opts, agc.WithDecay(o.decay))
	}
	if set["hang"] {
		opts = append(opts, agc.WithHang(o.hang))
	}
	if set["off"] {
		opts = append(opts, agc.WithEnabled(!o.disabled))
	}
	return cfg.With(opts...), nil
}

func printPresets(w io.Writer) {
	for _, p := range agc.Presets() {
		desc := "keeps configured decay"
		switch {
		case p == agc.PresetOff:
			desc = "manual gain"
		case p.DecayTime() > 0:
			desc = fmt.Sprintf("decay %g ms", p.DecayTime())
		}
		fmt.Fprintf(w, "%-8s %s\n", p, desc)
	}
}

func printParams(w io.Writer, e *agc.Engine) error {
	cfg := e.Config()
	p := e.Params()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value string
	}{
		{"mode", cfg.Mode().String()},
		{"sample rate", fmt.Sprintf("%g Hz", cfg.SampleRate)},
		{"target level", fmt.Sprintf("%.1f dBFS (%.4f)", cfg.TargetLevel, p.TargetLinear)},
		{"gain range", fmt.Sprintf("%.1f .. %.1f dB", agc.MinGainDB, cfg.MaxGain)},
		{"manual gain", fmt.Sprintf("%.1f dB", cfg.ManualGain)},
		{"look-ahead", fmt.Sprintf("%d samples (%.3f ms)", p.Window, samplesToMs(p.Window, cfg.SampleRate))},
		{"attack step", fmt.Sprintf("%.4f dB/sample", p.AttackStepDB())},
		{"decay", fmt.Sprintf("%d samples, %.6f dB/sample", p.DecaySamples, p.DecayStepDB())},
		{"hang", fmt.Sprintf("%d samples (%.1f ms)", p.HangSamples, samplesToMs(p.HangSamples, cfg.SampleRate))},
		{"20 dB attack", fmt.Sprintf("%d samples", p.AttackSamples(20))},
		{"20 dB recovery", fmt.Sprintf("%d samples", p.DecaySamplesFor(20))},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.name, r.value); err != nil {
			return fmt.Errorf("write parameters: %w", err)
		}
	}
	return tw.Flush()
}

func samplesToMs(n int, rate float64) float64 {
	return float64(n) * 1000 / rate
}

// row summarizes one slice of a simulation.
type row struct {
	startMs  float64
	inPeak   float64
	outPeak  float64
	outRMS   float64
	gainDB   float64
	state    agc.State
	hangLeft int
}

var errUnknownSignal = errors.New("unknown simulation signal")

// simulate feeds a synthetic signal through e in report-sized blocks.
func simulate(e *agc.Engine, kind string, durationMs float64, nrows int) ([]row, error) {
	rate := e.Config().SampleRate
	n := core.MsToSamples(durationMs, rate)
	if n <= 0 || nrows <= 0 {
		return nil, fmt.Errorf("simulation needs a positive duration and row count")
	}

	in, err := testSignal(kind, rate, n)
	if err != nil {
		return nil, err
	}

	block := max(1, n/nrows)
	out := make([]float64, block)
	var rows []row
	for start := 0; start < n; start += block {
		end := min(start+block, n)
		e.ProcessReal(out, in[start:end])
		s := e.Snapshot()
		outLevel := level.Calculate(out[:end-start])
		rows = append(rows, row{
			startMs:  samplesToMs(start, rate),
			inPeak:   level.Calculate(in[start:end]).PeakDB,
			outPeak:  outLevel.PeakDB,
			outRMS:   outLevel.RMSDB,
			gainDB:   s.GainDB(),
			state:    s.State,
			hangLeft: s.HangCounter,
		})
	}
	return rows, nil
}

// testSignal builds a 1 kHz tone shaped by kind. Loud sections start at a
// quarter of the run.
func testSignal(kind string, rate float64, n int) ([]float64, error) {
	g := signal.NewGenerator(core.WithSampleRate(rate))
	switch kind {
	case "step":
		env, err := g.Step(0.01, 1, n/4, n)
		if err != nil {
			return nil, err
		}
		tone, err := g.Sine(1000, 1, n)
		if err != nil {
			return nil, err
		}
		for i := range tone {
			tone[i] *= env[i]
		}
		return tone, nil
	case "burst":
		return g.ToneBurst(1000, 0.01, 1, n/4, n/2, n)
	case "silence":
		return make([]float64, n), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSignal, kind)
	}
}

func printRows(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time [ms]\tIn [dBFS]\tOut [dBFS]\tOut RMS [dBFS]\tGain [dB]\tState\tHang\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---------\t---------\t----------\t--------------\t---------\t-----\t----\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%.1f\t%s\t%s\t%s\t%.2f\t%s\t%d\n",
			r.startMs, formatDB(r.inPeak), formatDB(r.outPeak), formatDB(r.outRMS), r.gainDB, r.state, r.hangLeft,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}
