package graph

import (
	"github.com/dmeehan/polysynth-go/internal/dsp"
)

// Reverb wraps the Schroeder network as an effect node with a dry/wet mix.
// The network is allocated once for the maximum supported sample rate; a
// rate change from the render context only retunes the delay lengths.
type Reverb struct {
	Base
	rev      *dsp.SchroederReverb
	roomSize float32
	damping  float32
	mix      float32
	tail     int // frames of tail left after silent input
}

// NewReverb builds a reverb. roomSize 0 is a small room, 1 a large hall;
// damping 0 is bright, 1 dark; mix 0 is dry, 1 wet.
func NewReverb(roomSize, damping, mix float32) *Reverb {
	r := &Reverb{
		rev:      dsp.NewSchroederReverb(48000),
		roomSize: clamp(roomSize, 0, 1),
		damping:  clamp(damping, 0, 1),
		mix:      clamp(mix, 0, 1),
	}
	r.rev.SetRoomSize(r.roomSize)
	r.rev.SetDamping(r.damping)
	return r
}

// NewRoomReverb is a short, tight preset.
func NewRoomReverb(mix float32) *Reverb { return NewReverb(0.3, 0.5, mix) }

// NewHallReverb is a balanced medium preset.
func NewHallReverb(mix float32) *Reverb { return NewReverb(0.6, 0.4, mix) }

// NewPlateReverb is a long, smooth preset.
func NewPlateReverb(mix float32) *Reverb { return NewReverb(0.85, 0.3, mix) }

func (r *Reverb) Render(out []float32, ctx Context) {
	if ctx.SampleRate > 0 && ctx.SampleRate != r.rev.SampleRate() {
		r.rev.SetSampleRate(ctx.SampleRate)
	}
	var peak float32
	for i, dry := range out {
		if dry > peak {
			peak = dry
		} else if -dry > peak {
			peak = -dry
		}
		wet := r.rev.Process(dry)
		out[i] = dry*(1-r.mix) + wet*r.mix
	}

	if peak > silenceFloor {
		frames := int(r.rev.TailSeconds(silenceFloor) * ctx.SampleRate)
		if limit := int(ctx.SampleRate) * maxTailSeconds; frames > limit {
			frames = limit
		}
		if frames < 1 {
			frames = 1
		}
		r.tail = frames
	} else if r.tail > 0 {
		r.tail -= len(out)
		if r.tail < 0 {
			r.tail = 0
		}
	}
}

// Active reports whether the tail is still ringing.
func (r *Reverb) Active() bool { return r.tail > 0 }

// NoteOn keeps the tail ringing; resetting here would cut the reverb of
// the previous note.
func (r *Reverb) NoteOn(Context) {}

func (r *Reverb) ParamValue(p Param) (float32, bool) {
	switch p {
	case ParamRoomSize:
		return r.roomSize, true
	case ParamDamping:
		return r.damping, true
	case ParamMix:
		return r.mix, true
	}
	return 0, false
}

func (r *Reverb) ApplyModulation(p Param, value float32) {
	switch p {
	case ParamRoomSize:
		r.roomSize = clamp(value, 0, 1)
		r.rev.SetRoomSize(r.roomSize)
	case ParamDamping:
		r.damping = clamp(value, 0, 1)
		r.rev.SetDamping(r.damping)
	case ParamMix:
		r.mix = clamp(value, 0, 1)
	}
}
