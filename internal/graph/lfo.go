package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// LFO rate bounds in Hz. Below audible rates by design of the callers, but
// nothing prevents audio-rate use up to the cap.
const (
	minLFORate = 0.01
	maxLFORate = 100
)

// LFO is an oscillator that runs at its own fixed rate, ignoring the note
// pitch in the render context. Its bipolar output feeds Modulate and
// Amplify combinators.
type LFO struct {
	Base
	osc  dsp.Oscillator
	rate float32
}

func NewLFO(wave dsp.Waveform, rateHz float32) *LFO {
	return &LFO{
		osc:  dsp.NewOscillator(wave),
		rate: clamp(rateHz, minLFORate, maxLFORate),
	}
}

func (l *LFO) Render(out []float32, ctx Context) {
	l.osc.Render(out, l.rate, ctx.SampleRate)
}

func (l *LFO) Rate() float32 { return l.rate }

func (l *LFO) SetRate(rateHz float32) {
	l.rate = clamp(rateHz, minLFORate, maxLFORate)
}
