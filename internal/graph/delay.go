package graph

import (
	"math"

	"github.com/dmeehan/polysynth-go/internal/dsp"
)

// Delay time and feedback bounds. Feedback stays below 1 so the recursion
// is contractive.
const (
	minDelayMs = 0.1
	maxDelayMs = 2000
	maxDelayFB = 0.95
)

// Delay is an echo effect. When the delay time is modulated, the effective
// delay ramps linearly across each block so the read position never jumps.
type Delay struct {
	Base
	line     dsp.DelayLine
	delayMs  float32
	feedback float32
	mix      float32

	prevDelaySamples float32
	firstBlock       bool
	tail             int // frames of echo left after silent input
}

// NewDelay builds a delay with the given time in milliseconds, feedback
// amount, and dry/wet mix.
func NewDelay(delayMs, feedback, mix float32) *Delay {
	return &Delay{
		line:       dsp.NewDelayLine(),
		delayMs:    clamp(delayMs, minDelayMs, maxDelayMs),
		feedback:   clamp(feedback, 0, maxDelayFB),
		mix:        clamp(mix, 0, 1),
		firstBlock: true,
	}
}

func (d *Delay) Render(out []float32, ctx Context) {
	target := d.delayMs / 1000 * ctx.SampleRate
	if d.firstBlock {
		d.prevDelaySamples = target
		d.firstBlock = false
	}
	var step float32
	if len(out) > 0 {
		step = (target - d.prevDelaySamples) / float32(len(out))
	}
	delay := d.prevDelaySamples
	var peak float32
	for i, dry := range out {
		if dry > peak {
			peak = dry
		} else if -dry > peak {
			peak = -dry
		}
		wet := d.line.ReadInterpolated(delay)
		d.line.Write(dry + wet*d.feedback)
		out[i] = dry*(1-d.mix) + wet*d.mix
		delay += step
	}
	d.prevDelaySamples = target

	if peak > silenceFloor {
		d.tail = d.tailFrames(ctx.SampleRate)
	} else if d.tail > 0 {
		d.tail -= len(out)
		if d.tail < 0 {
			d.tail = 0
		}
	}
}

// tailFrames is how long the echoes stay audible once the input goes
// silent: the echo period times the number of repeats the feedback needs
// to decay below the silence floor.
func (d *Delay) tailFrames(sampleRate float32) int {
	period := d.delayMs / 1000 * sampleRate
	repeats := 1
	if d.feedback > 0 {
		repeats = 1 + int(math.Log(silenceFloor)/math.Log(float64(d.feedback)))
	}
	frames := int(period) * repeats
	if limit := int(sampleRate) * maxTailSeconds; frames > limit {
		frames = limit
	}
	if frames < 1 {
		frames = 1
	}
	return frames
}

// Active reports whether echoes are still ringing.
func (d *Delay) Active() bool { return d.tail > 0 }

// NoteOn clears the buffer so the previous note's echoes do not bleed into
// the new one.
func (d *Delay) NoteOn(Context) {
	d.line.Reset()
	d.tail = 0
}

func (d *Delay) ParamValue(p Param) (float32, bool) {
	switch p {
	case ParamDelayTime:
		return d.delayMs, true
	case ParamFeedback:
		return d.feedback, true
	case ParamMix:
		return d.mix, true
	}
	return 0, false
}

func (d *Delay) ApplyModulation(p Param, value float32) {
	switch p {
	case ParamDelayTime:
		d.delayMs = clamp(value, minDelayMs, maxDelayMs)
	case ParamFeedback:
		d.feedback = clamp(value, 0, maxDelayFB)
	case ParamMix:
		d.mix = clamp(value, 0, 1)
	}
}
