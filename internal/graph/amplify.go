package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// Amplify multiplies a signal by a modulator, sample by sample. With a
// unipolar modulator (an envelope) this is amplitude shaping; with an
// audio-rate bipolar modulator it is ring modulation. The modulator
// renders into a scratch buffer allocated once at construction.
type Amplify struct {
	signal    Node
	modulator Node
	scratch   []float32
}

func NewAmplify(signal, modulator Node) *Amplify {
	return &Amplify{
		signal:    signal,
		modulator: modulator,
		scratch:   make([]float32, MaxBlockSize),
	}
}

func (a *Amplify) Render(out []float32, ctx Context) {
	a.signal.Render(out, ctx)
	mod := a.scratch[:len(out)]
	a.modulator.Render(mod, ctx)
	dsp.MultiplyInPlace(out, mod)
}

func (a *Amplify) NoteOn(ctx Context) {
	a.signal.NoteOn(ctx)
	a.modulator.NoteOn(ctx)
}

func (a *Amplify) NoteOff(ctx Context) {
	a.signal.NoteOff(ctx)
	a.modulator.NoteOff(ctx)
}

// Active follows the modulator, not the signal: when the modulator is an
// envelope, its idle state is what marks the voice as finished.
func (a *Amplify) Active() bool {
	return a.modulator.Active()
}

func (a *Amplify) EnvelopeLevel() (float32, bool) {
	if l, ok := a.modulator.EnvelopeLevel(); ok {
		return l, true
	}
	return a.signal.EnvelopeLevel()
}
