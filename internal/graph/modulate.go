package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// Modulate drives one parameter of a target node from a modulation source,
// usually an LFO. The source is rendered for the block and averaged to a
// single scalar, so the parameter updates once per block rather than once
// per sample. Below ~20 Hz modulation rates the difference from per-sample
// updates is inaudible, and the target only recomputes parameter-derived
// state once.
//
// The pushed value is base + average*depth, where base is the target's
// parameter value captured at construction. The target clamps the result
// into its own valid range; a base and depth that overshoot that range
// saturate silently.
type Modulate struct {
	target  Modulatable
	param   Param
	source  Node
	depth   float32
	base    float32
	scratch []float32
}

func NewModulate(target Modulatable, param Param, source Node, depth float32) *Modulate {
	base, _ := target.ParamValue(param)
	return &Modulate{
		target:  target,
		param:   param,
		source:  source,
		depth:   depth,
		base:    base,
		scratch: make([]float32, MaxBlockSize),
	}
}

func (m *Modulate) Render(out []float32, ctx Context) {
	mod := m.scratch[:len(out)]
	m.source.Render(mod, ctx)
	avg := dsp.BlockAverage(mod)
	m.target.ApplyModulation(m.param, m.base+avg*m.depth)
	m.target.Render(out, ctx)
}

func (m *Modulate) NoteOn(ctx Context) {
	m.source.NoteOn(ctx)
	m.target.NoteOn(ctx)
}

func (m *Modulate) NoteOff(ctx Context) {
	m.source.NoteOff(ctx)
	m.target.NoteOff(ctx)
}

func (m *Modulate) Active() bool {
	return m.target.Active()
}

func (m *Modulate) EnvelopeLevel() (float32, bool) {
	return m.target.EnvelopeLevel()
}
