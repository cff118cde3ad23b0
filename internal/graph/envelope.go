package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// Env is an ADSR envelope node. It renders its unipolar level into the
// buffer, so it is used as the modulator of an Amplify combinator rather
// than as an audio source.
type Env struct {
	env dsp.ADSR
}

// NewADSR builds an envelope node. Times are in seconds, sustain is a
// level in 0..1.
func NewADSR(attack, decay, sustain, release float32) *Env {
	return &Env{env: dsp.NewADSR(attack, decay, sustain, release)}
}

func (e *Env) Render(out []float32, ctx Context) {
	e.env.Render(out, ctx.SampleRate)
}

func (e *Env) NoteOn(Context) {
	e.env.NoteOn()
}

func (e *Env) NoteOff(ctx Context) {
	e.env.NoteOff(ctx.SampleRate)
}

func (e *Env) Active() bool {
	return e.env.Active()
}

func (e *Env) EnvelopeLevel() (float32, bool) {
	return e.env.Level(), true
}
