package agc

import (
	"math"

	"github.com/cwbudde/algo-agc/dsp/core"
)

// peakEpsilon keeps the demanded gain finite on silent input.
const peakEpsilon = 1e-12

// controller turns the look-ahead peak into a smoothed gain.
type controller struct {
	p Params

	state   State
	current float64
	target  float64
	hang    int
}

// reset puts the controller in its power-on state.
func (c *controller) reset(mode Mode) {
	c.hang = 0
	if mode == ModeManual {
		c.enterManual()
		return
	}
	c.state = StateTracking
	c.current = c.p.MaxGainLinear
	c.target = c.p.MaxGainLinear
}

func (c *controller) enterManual() {
	c.state = StateManual
	c.current = c.p.ManualLinear
	c.target = c.p.ManualLinear
	c.hang = 0
}

// leaveManual resumes automatic control from the current gain.
func (c *controller) leaveManual() {
	c.state = StateTracking
	c.hang = 0
	c.current = core.Clamp(c.current, c.p.GainFloor, c.p.MaxGainLinear)
}

// manual returns the fixed gain of the manual path.
func (c *controller) manual() float64 {
	c.current = c.p.ManualLinear
	c.target = c.p.ManualLinear
	return c.current
}

// next advances the state machine by one sample.
func (c *controller) next(peak float64) float64 {
	desired := c.p.TargetLinear / math.Max(peak, peakEpsilon)
	desired = core.Clamp(desired, c.p.GainFloor, c.p.MaxGainLinear)
	c.target = desired

	if desired < c.current {
		c.state = StateAttack
	}

	switch c.state {
	case StateAttack:
		// Demand rose mid-attack: hold, gain only rises through decay.
		if desired >= c.current {
			c.state = StateHang
			c.hang = c.p.HangSamples
			break
		}
		c.current = math.Max(c.current*c.p.AttackStep, desired)
		if c.current == desired {
			c.state = StateHang
			c.hang = c.p.HangSamples
		}

	case StateHang:
		// The overload is still in the window: measure the hold from when it
		// leaves.
		if desired <= c.current {
			c.hang = c.p.HangSamples
		}
		if c.hang > 0 {
			c.hang--
		}
		if c.hang == 0 {
			c.state = StateDecay
		}

	case StateDecay, StateTracking:
		if desired > c.current {
			c.state = StateDecay
			c.current *= c.p.DecayStep
			if c.current >= desired {
				c.current = desired
				c.state = StateTracking
			}
		} else {
			c.state = StateTracking
		}

	case StateManual:
		c.leaveManual()
	}

	c.current = core.Clamp(c.current, c.p.GainFloor, c.p.MaxGainLinear)
	return c.current
}
