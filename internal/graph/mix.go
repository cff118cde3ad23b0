package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// Mix blends two sources with weights (1-balance, balance). The weights
// sum to 1, so an equal mix of two unit-peak signals stays at unit peak.
type Mix struct {
	a, b    Node
	balance float32
	scratch []float32
}

func NewMix(a, b Node, balance float32) *Mix {
	return &Mix{
		a:       a,
		b:       b,
		balance: clamp(balance, 0, 1),
		scratch: make([]float32, MaxBlockSize),
	}
}

func (m *Mix) Render(out []float32, ctx Context) {
	m.a.Render(out, ctx)
	other := m.scratch[:len(out)]
	m.b.Render(other, ctx)
	dsp.MixInPlace(out, other, m.balance)
}

func (m *Mix) NoteOn(ctx Context) {
	m.a.NoteOn(ctx)
	m.b.NoteOn(ctx)
}

func (m *Mix) NoteOff(ctx Context) {
	m.a.NoteOff(ctx)
	m.b.NoteOff(ctx)
}

func (m *Mix) Active() bool {
	return m.a.Active() || m.b.Active()
}

// EnvelopeLevel reports the louder of the two sides so the mix is
// considered as loud as its loudest branch.
func (m *Mix) EnvelopeLevel() (float32, bool) {
	la, oka := m.a.EnvelopeLevel()
	lb, okb := m.b.EnvelopeLevel()
	switch {
	case oka && okb:
		if lb > la {
			return lb, true
		}
		return la, true
	case oka:
		return la, true
	case okb:
		return lb, true
	}
	return 0, false
}
