package graph

// Gain scales its source by a constant factor. Useful for balancing a
// voice against the rest of a mix; factors above 1 can push peaks past
// unit range, which the caller accepts when boosting.
type Gain struct {
	source Node
	factor float32
}

func NewGain(source Node, factor float32) *Gain {
	if factor < 0 {
		factor = 0
	}
	return &Gain{source: source, factor: factor}
}

func (g *Gain) Render(out []float32, ctx Context) {
	g.source.Render(out, ctx)
	for i := range out {
		out[i] *= g.factor
	}
}

func (g *Gain) NoteOn(ctx Context)  { g.source.NoteOn(ctx) }
func (g *Gain) NoteOff(ctx Context) { g.source.NoteOff(ctx) }
func (g *Gain) Active() bool        { return g.source.Active() }

func (g *Gain) EnvelopeLevel() (float32, bool) {
	return g.source.EnvelopeLevel()
}
