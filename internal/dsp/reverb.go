package dsp

import "math"

// Schroeder reverb: four parallel combs summed and normalized, feeding two
// series allpasses for diffusion. Comb delay lengths are mutually prime so
// their periodic echoes do not reinforce at the same frequencies.
//
// All buffers are sized at construction for the maximum supported sample
// rate; sample-rate or room changes only reassign logical lengths and
// re-wrap cursors, never reallocate.

const maxReverbSampleRate = 192000

// Delay lengths in samples at the 44.1 kHz reference rate.
var combTuning = [numCombs]int{1117, 1193, 1277, 1361}
var allpassTuning = [numAllpasses]int{557, 225}

const (
	numCombs      = 4
	numAllpasses  = 2
	refSampleRate = 44100
	allpassGain   = 0.5

	// Room size 0..1 maps linearly onto comb feedback 0.70..0.98.
	feedbackFloor = 0.70
	feedbackSpan  = 0.28
)

type SchroederReverb struct {
	combs      [numCombs]Comb
	allpasses  [numAllpasses]Allpass
	sampleRate float32
	roomSize   float32
	damping    float32
}

func NewSchroederReverb(sampleRate float32) *SchroederReverb {
	r := &SchroederReverb{}
	for i := range r.combs {
		r.combs[i] = NewComb(scaleDelay(combTuning[i], maxReverbSampleRate))
	}
	for i := range r.allpasses {
		r.allpasses[i] = NewAllpass(scaleDelay(allpassTuning[i], maxReverbSampleRate), allpassGain)
	}
	r.SetRoomSize(0.5)
	r.SetDamping(0.5)
	r.SetSampleRate(sampleRate)
	return r
}

func scaleDelay(refSamples int, sampleRate float32) int {
	n := int(float32(refSamples) * sampleRate / refSampleRate)
	if n < 1 {
		n = 1
	}
	return n
}

// SetSampleRate reassigns logical delay lengths for the new rate. Cursors
// are re-wrapped, buffer contents are kept.
func (r *SchroederReverb) SetSampleRate(sampleRate float32) {
	if sampleRate <= 0 {
		sampleRate = refSampleRate
	}
	if sampleRate > maxReverbSampleRate {
		sampleRate = maxReverbSampleRate
	}
	r.sampleRate = sampleRate
	for i := range r.combs {
		r.combs[i].SetLength(scaleDelay(combTuning[i], sampleRate))
	}
	for i := range r.allpasses {
		r.allpasses[i].SetLength(scaleDelay(allpassTuning[i], sampleRate))
	}
}

func (r *SchroederReverb) SampleRate() float32 {
	return r.sampleRate
}

func (r *SchroederReverb) SetRoomSize(size float32) {
	r.roomSize = clamp(size, 0, 1)
	fb := feedbackFloor + feedbackSpan*r.roomSize
	for i := range r.combs {
		r.combs[i].SetFeedback(fb)
	}
}

func (r *SchroederReverb) SetDamping(d float32) {
	r.damping = clamp(d, 0, 1)
	for i := range r.combs {
		r.combs[i].SetDamping(r.damping)
	}
}

func (r *SchroederReverb) RoomSize() float32 { return r.roomSize }
func (r *SchroederReverb) Damping() float32  { return r.damping }

// TailSeconds estimates how long the network rings after its input goes
// silent: the longest comb period times the round trips the comb feedback
// needs to fall below the given amplitude floor. Damping shortens the
// real tail, so this is an upper bound.
func (r *SchroederReverb) TailSeconds(floor float32) float32 {
	if floor <= 0 || floor >= 1 {
		floor = 1e-4
	}
	fb := feedbackFloor + feedbackSpan*r.roomSize
	period := float32(combTuning[numCombs-1]) / refSampleRate
	trips := float32(math.Log(float64(floor)) / math.Log(float64(fb)))
	return period * (trips + 1)
}

// Process runs one sample through the reverb network and returns the wet
// signal.
func (r *SchroederReverb) Process(in float32) float32 {
	var out float32
	for i := range r.combs {
		out += r.combs[i].Process(in)
	}
	out *= 1.0 / numCombs
	for i := range r.allpasses {
		out = r.allpasses[i].Process(out)
	}
	return out
}

func (r *SchroederReverb) Reset() {
	for i := range r.combs {
		r.combs[i].Reset()
	}
	for i := range r.allpasses {
		r.allpasses[i].Reset()
	}
}
