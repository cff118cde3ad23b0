package dsp

import "math"

const twoPi = 2 * math.Pi

// Waveform selects the oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSawtooth
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Oscillator is a phase-accumulator waveform generator. Phase is kept in
// radians and always wrapped into [0, 2*pi).
type Oscillator struct {
	phase float64
	wave  Waveform
	duty  float64 // square only, threshold as fraction of the cycle
	rng   uint32  // xorshift32 state, noise only
}

func NewOscillator(wave Waveform) Oscillator {
	return Oscillator{
		wave: wave,
		duty: 0.5,
		rng:  0x9E3779B9,
	}
}

// SetDuty sets the square-wave duty cycle. Clamped away from 0 and 1 so the
// output always has both halves of the cycle.
func (o *Oscillator) SetDuty(duty float64) {
	o.duty = clampF64(duty, 0.01, 0.99)
}

// Duty returns the square-wave duty cycle.
func (o *Oscillator) Duty() float64 {
	return o.duty
}

// Phase returns the current phase in radians.
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// ResetPhase rewinds the waveform to the start of its cycle.
func (o *Oscillator) ResetPhase() {
	o.phase = 0
}

// NextSample evaluates the current waveform at the current phase without
// advancing it.
func (o *Oscillator) NextSample() float32 {
	switch o.wave {
	case WaveSawtooth:
		// Linear ramp from +1 down to -1 over one cycle.
		return float32(1 - 2*o.phase/twoPi)
	case WaveSquare:
		if o.phase < twoPi*o.duty {
			return 1
		}
		return -1
	case WaveTriangle:
		// Folded sawtooth: rises 0..pi, falls pi..2pi.
		return float32(2*math.Abs(2*o.phase/twoPi-1) - 1)
	case WaveNoise:
		o.rng ^= o.rng << 13
		o.rng ^= o.rng >> 17
		o.rng ^= o.rng << 5
		return float32(float64(o.rng)/float64(math.MaxUint32)*2 - 1)
	default:
		return float32(math.Sin(o.phase))
	}
}

// Render fills out with one block of the waveform at the given frequency.
// A non-positive sample rate yields silence rather than a division by zero.
func (o *Oscillator) Render(out []float32, freq, sampleRate float32) {
	if sampleRate <= 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}
	inc := twoPi * float64(freq) / float64(sampleRate)
	for i := range out {
		out[i] = o.NextSample()
		o.phase = wrapPhase(o.phase + inc)
	}
}

// wrapPhase wraps p into [0, 2*pi), correct for negative inputs (negative
// frequencies produce a negative increment).
func wrapPhase(p float64) float64 {
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
