// Package level measures peak and RMS levels of sample blocks, the way an
// AGC's input and output are judged.
package level

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-agc/dsp/core"
)

// Stats holds block level statistics. dB fields are relative to full scale
// and are -Inf for silence.
type Stats struct {
	Length  int
	Peak    float64
	PeakPos int
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	// CrestDB is the peak-to-RMS ratio; 0 for silence.
	CrestDB float64
}

func emptyStats() Stats {
	return Stats{
		PeakDB: math.Inf(-1),
		RMSDB:  math.Inf(-1),
	}
}

// Calculate returns the statistics of a real block.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)
	return m.Result()
}

// CalculateComplex returns the statistics of the magnitudes of a complex
// block.
func CalculateComplex(signal []complex128) Stats {
	var m Meter
	m.UpdateComplex(signal)
	return m.Result()
}

// Peak returns the largest absolute value, 0 for an empty block.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Meter accumulates level statistics across blocks. The zero value is ready
// to use.
type Meter struct {
	n       int
	sumSq   float64
	peak    float64
	peakPos int
}

// Update adds real samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		m.add(math.Abs(x))
	}
}

// UpdateComplex adds complex samples by magnitude.
func (m *Meter) UpdateComplex(samples []complex128) {
	for _, x := range samples {
		m.add(cmplx.Abs(x))
	}
}

func (m *Meter) add(mag float64) {
	if mag > m.peak {
		m.peak = mag
		m.peakPos = m.n
	}
	m.sumSq += mag * mag
	m.n++
}

// Result returns the statistics of everything added since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))
	s := Stats{
		Length:  m.n,
		Peak:    m.peak,
		PeakPos: m.peakPos,
		PeakDB:  core.LinearToDB(m.peak),
		RMS:     rms,
		RMSDB:   core.LinearToDB(rms),
	}
	if rms > 0 {
		s.CrestDB = core.LinearToDB(m.peak / rms)
	}
	return s
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}
