package dsp

import "math"

// FilterMode selects which of the four simultaneously-computed outputs of
// the state-variable filter is written.
type FilterMode int

const (
	FilterLowpass FilterMode = iota
	FilterHighpass
	FilterBandpass
	FilterNotch
)

// SVF is a topology-preserving two-integrator state-variable filter.
// One coefficient pair (g, k) serves all four response modes; g pre-warps
// the cutoff through the tangent so the digital corner matches the analog
// prototype, k = 2 - 2*resonance controls the reciprocal of Q.
type SVF struct {
	mode      FilterMode
	cutoff    float64 // Hz
	resonance float64 // 0..1
	ic1eq     float64
	ic2eq     float64
}

func NewSVF(mode FilterMode, cutoffHz float32) SVF {
	f := SVF{mode: mode}
	f.SetCutoff(cutoffHz)
	return f
}

// SetCutoff clamps into the audible range rather than rejecting.
func (f *SVF) SetCutoff(hz float32) {
	f.cutoff = clampF64(float64(hz), 20, 20000)
}

// SetResonance clamps into [0, 1].
func (f *SVF) SetResonance(r float32) {
	f.resonance = clampF64(float64(r), 0, 1)
}

func (f *SVF) Cutoff() float32    { return float32(f.cutoff) }
func (f *SVF) Resonance() float32 { return float32(f.resonance) }

// Reset clears the integrator memories.
func (f *SVF) Reset() {
	f.ic1eq = 0
	f.ic2eq = 0
}

// Render filters the buffer in place. Coefficients are recomputed once per
// call from the current cutoff/resonance; both integrator steps produce the
// bandpass and lowpass taps directly, highpass and notch are algebraic
// combinations of those taps and the input.
func (f *SVF) Render(buf []float32, sampleRate float32) {
	if sampleRate <= 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}
	sr := float64(sampleRate)
	fc := math.Min(f.cutoff, 0.49*sr)
	g := math.Tan(math.Pi * fc / sr)
	k := 2 - 2*f.resonance
	a1 := 1 / (1 + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	for i := range buf {
		v0 := float64(buf[i])
		v3 := v0 - f.ic2eq
		v1 := a1*f.ic1eq + a2*v3
		v2 := f.ic2eq + a2*f.ic1eq + a3*v3
		f.ic1eq = 2*v1 - f.ic1eq
		f.ic2eq = 2*v2 - f.ic2eq

		var out float64
		switch f.mode {
		case FilterHighpass:
			out = v0 - k*v1 - v2
		case FilterBandpass:
			out = v1
		case FilterNotch:
			out = v0 - k*v1
		default:
			out = v2
		}
		buf[i] = float32(out)
	}
}
