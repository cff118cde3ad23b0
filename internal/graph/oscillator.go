package graph

import (
	"math"

	"github.com/dmeehan/polysynth-go/internal/dsp"
)

// Audible pitch range. Frequencies are clamped here after detune and
// modulation are applied.
const (
	minOscFreq = 20
	maxOscFreq = 20000
)

// Osc is a leaf oscillator node. By default it tracks the note frequency
// from the render context; WithFrequency pins it to a fixed pitch instead.
type Osc struct {
	Base
	osc       dsp.Oscillator
	fixedFreq float32 // 0 means follow ctx.Frequency
	modFreq   float32 // modulation override, 0 means none
	detune    float32 // cents
}

// OscOption configures an oscillator at construction.
type OscOption func(*Osc)

// WithFrequency pins the oscillator to a fixed frequency in Hz, ignoring
// the note pitch from the render context.
func WithFrequency(hz float32) OscOption {
	return func(o *Osc) { o.fixedFreq = clamp(hz, minOscFreq, maxOscFreq) }
}

// WithDetune offsets the pitch by the given number of cents, clamped to
// plus or minus two semitones.
func WithDetune(cents float32) OscOption {
	return func(o *Osc) { o.detune = clamp(cents, -200, 200) }
}

// WithDuty sets the square-wave duty cycle.
func WithDuty(duty float32) OscOption {
	return func(o *Osc) { o.osc.SetDuty(float64(duty)) }
}

func newOsc(wave dsp.Waveform, opts ...OscOption) *Osc {
	o := &Osc{osc: dsp.NewOscillator(wave)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func NewSine(opts ...OscOption) *Osc     { return newOsc(dsp.WaveSine, opts...) }
func NewSawtooth(opts ...OscOption) *Osc { return newOsc(dsp.WaveSawtooth, opts...) }
func NewSquare(opts ...OscOption) *Osc   { return newOsc(dsp.WaveSquare, opts...) }
func NewTriangle(opts ...OscOption) *Osc { return newOsc(dsp.WaveTriangle, opts...) }
func NewNoise(opts ...OscOption) *Osc    { return newOsc(dsp.WaveNoise, opts...) }

func (o *Osc) frequency(ctx Context) float32 {
	f := ctx.Frequency
	if o.fixedFreq > 0 {
		// Frequency modulation only applies to fixed-pitch oscillators;
		// a note-tracking oscillator always follows the context so
		// modulation cannot detach it from the played pitch.
		f = o.fixedFreq
		if o.modFreq > 0 {
			f = o.modFreq
		}
	}
	if o.detune != 0 {
		f *= float32(math.Pow(2, float64(o.detune)/1200))
	}
	return clamp(f, minOscFreq, maxOscFreq)
}

func (o *Osc) Render(out []float32, ctx Context) {
	o.osc.Render(out, o.frequency(ctx), ctx.SampleRate)
}

// NoteOn discards any pending frequency modulation so the note starts at
// its base pitch. Phase is deliberately not reset; a free-running phase
// avoids a click when voices are retriggered.
func (o *Osc) NoteOn(Context) {
	o.modFreq = 0
}

func (o *Osc) ParamValue(p Param) (float32, bool) {
	switch p {
	case ParamFrequency:
		if o.fixedFreq > 0 {
			return o.fixedFreq, true
		}
		return 440, true
	case ParamDetune:
		return o.detune, true
	}
	return 0, false
}

func (o *Osc) ApplyModulation(p Param, value float32) {
	switch p {
	case ParamFrequency:
		o.modFreq = clamp(value, minOscFreq, maxOscFreq)
	case ParamDetune:
		o.detune = clamp(value, -200, 200)
	}
}
