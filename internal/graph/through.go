package graph

// Through chains a source into an effect. The source renders into the
// buffer, then the effect processes the same buffer in place. Order
// matters: filter-then-distortion and distortion-then-filter sound
// different, and both orderings are valid.
type Through struct {
	source Node
	effect Node
}

func NewThrough(source, effect Node) *Through {
	return &Through{source: source, effect: effect}
}

func (t *Through) Render(out []float32, ctx Context) {
	t.source.Render(out, ctx)
	t.effect.Render(out, ctx)
}

func (t *Through) NoteOn(ctx Context) {
	t.source.NoteOn(ctx)
	t.effect.NoteOn(ctx)
}

func (t *Through) NoteOff(ctx Context) {
	t.source.NoteOff(ctx)
	t.effect.NoteOff(ctx)
}

// Active reports true while either side still produces output; an effect
// with a tail keeps the chain alive after the source has gone quiet.
func (t *Through) Active() bool {
	return t.source.Active() || t.effect.Active()
}

func (t *Through) EnvelopeLevel() (float32, bool) {
	return t.source.EnvelopeLevel()
}
