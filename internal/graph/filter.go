package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// Filter is a state-variable filter node. As an effect it processes the
// buffer in place, so it is normally the tail of a Through chain.
type Filter struct {
	Base
	svf dsp.SVF
}

// FilterOption configures a filter at construction.
type FilterOption func(*Filter)

// WithResonance sets the filter resonance, 0 to 1.
func WithResonance(r float32) FilterOption {
	return func(f *Filter) { f.svf.SetResonance(r) }
}

func newFilter(mode dsp.FilterMode, cutoffHz float32, opts ...FilterOption) *Filter {
	f := &Filter{svf: dsp.NewSVF(mode, cutoffHz)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func NewLowpass(cutoffHz float32, opts ...FilterOption) *Filter {
	return newFilter(dsp.FilterLowpass, cutoffHz, opts...)
}

func NewHighpass(cutoffHz float32, opts ...FilterOption) *Filter {
	return newFilter(dsp.FilterHighpass, cutoffHz, opts...)
}

func NewBandpass(cutoffHz float32, opts ...FilterOption) *Filter {
	return newFilter(dsp.FilterBandpass, cutoffHz, opts...)
}

func NewNotch(cutoffHz float32, opts ...FilterOption) *Filter {
	return newFilter(dsp.FilterNotch, cutoffHz, opts...)
}

func (f *Filter) Render(out []float32, ctx Context) {
	f.svf.Render(out, ctx.SampleRate)
}

// Active is false: a filter only shapes what flows through it, so it
// never keeps a voice alive on its own.
func (f *Filter) Active() bool { return false }

func (f *Filter) ParamValue(p Param) (float32, bool) {
	switch p {
	case ParamCutoff:
		return f.svf.Cutoff(), true
	case ParamResonance:
		return f.svf.Resonance(), true
	}
	return 0, false
}

func (f *Filter) ApplyModulation(p Param, value float32) {
	switch p {
	case ParamCutoff:
		f.svf.SetCutoff(value)
	case ParamResonance:
		f.svf.SetResonance(value)
	}
}
