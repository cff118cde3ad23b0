package graph

import (
	"math"

	"github.com/dmeehan/polysynth-go/internal/dsp"
)

// Chorus parameter bounds.
const (
	minChorusRate    = 0.1
	maxChorusRate    = 10
	minChorusDepthMs = 0.5
	maxChorusDepthMs = 10
	minChorusBaseMs  = 5
	maxChorusBaseMs  = 50
)

// Chorus thickens the signal by mixing in a short delayed copy whose delay
// time is swept by an internal sine LFO. The sweep produces small pitch
// shifts, like several players on the same part.
type Chorus struct {
	Base
	line     dsp.DelayLine
	lfoPhase float64
	rate     float32 // LFO Hz
	depthMs  float32
	mix      float32
	baseMs   float32
	tail     int // frames of delayed copy left after silent input
}

// ChorusOption configures a chorus at construction.
type ChorusOption func(*Chorus)

// WithBaseDelay sets the center delay time in milliseconds. Short values
// drift toward comb filtering, long ones toward slapback.
func WithBaseDelay(ms float32) ChorusOption {
	return func(c *Chorus) { c.baseMs = clamp(ms, minChorusBaseMs, maxChorusBaseMs) }
}

// NewChorus builds a chorus with the given LFO rate in Hz, sweep depth in
// milliseconds, and dry/wet mix.
func NewChorus(rate, depthMs, mix float32, opts ...ChorusOption) *Chorus {
	c := &Chorus{
		line:    dsp.NewDelayLine(),
		rate:    clamp(rate, minChorusRate, maxChorusRate),
		depthMs: clamp(depthMs, minChorusDepthMs, maxChorusDepthMs),
		mix:     clamp(mix, 0, 1),
		baseMs:  20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chorus) Render(out []float32, ctx Context) {
	sr := ctx.SampleRate
	if sr <= 0 {
		return
	}
	phaseInc := 2 * math.Pi * float64(c.rate) / float64(sr)
	var peak float32
	for i, dry := range out {
		if dry > peak {
			peak = dry
		} else if -dry > peak {
			peak = -dry
		}
		lfo := float32(math.Sin(c.lfoPhase))
		delayMs := c.baseMs + lfo*c.depthMs
		delaySamples := delayMs * sr / 1000
		if delaySamples < 1 {
			delaySamples = 1
		}
		wet := c.line.ReadInterpolated(delaySamples)
		c.line.Write(dry)
		out[i] = dry*(1-c.mix) + wet*c.mix

		c.lfoPhase += phaseInc
		if c.lfoPhase >= 2*math.Pi {
			c.lfoPhase -= 2 * math.Pi
		}
	}

	// No feedback, so the tail is just the longest swept delay.
	if peak > silenceFloor {
		frames := int((c.baseMs + c.depthMs) / 1000 * sr)
		if frames < 1 {
			frames = 1
		}
		c.tail = frames
	} else if c.tail > 0 {
		c.tail -= len(out)
		if c.tail < 0 {
			c.tail = 0
		}
	}
}

// Active reports whether the delayed copy is still sounding.
func (c *Chorus) Active() bool { return c.tail > 0 }

// NoteOn leaves the delay line alone so the shimmer is continuous across
// notes.
func (c *Chorus) NoteOn(Context) {}

func (c *Chorus) ParamValue(p Param) (float32, bool) {
	switch p {
	case ParamRate:
		return c.rate, true
	case ParamDepth:
		return c.depthMs, true
	case ParamMix:
		return c.mix, true
	}
	return 0, false
}

func (c *Chorus) ApplyModulation(p Param, value float32) {
	switch p {
	case ParamRate:
		c.rate = clamp(value, minChorusRate, maxChorusRate)
	case ParamDepth:
		c.depthMs = clamp(value, minChorusDepthMs, maxChorusDepthMs)
	case ParamMix:
		c.mix = clamp(value, 0, 1)
	}
}
