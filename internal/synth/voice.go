package synth

import "github.com/dmeehan/polysynth-go/internal/graph"

// VoiceState is the allocation state of one pooled voice.
type VoiceState uint8

const (
	// VoiceFree means available for allocation.
	VoiceFree VoiceState = iota
	// VoiceActive means playing, envelope before release.
	VoiceActive
	// VoiceReleasing means the key is up and the envelope is ringing out.
	VoiceReleasing
)

// Voice binds a signal graph to a note. The pool owns a fixed set of
// voices; allocation and stealing happen by state transition, never by
// rebuilding the graph.
type Voice struct {
	graph      graph.Node
	note       uint8
	velocity   uint8
	state      VoiceState
	age        uint64
	sampleRate float32
}

func NewVoice(g graph.Node, sampleRate float32) Voice {
	return Voice{graph: g, sampleRate: sampleRate}
}

func (v *Voice) ctx() graph.Context {
	return graph.ContextForNote(v.sampleRate, v.note, v.velocity, 0)
}

// Start binds the voice to a note and triggers the graph. age is the
// frame counter at allocation time, used for steal ordering.
func (v *Voice) Start(note, velocity uint8, age uint64) {
	v.note = note
	v.velocity = velocity
	v.state = VoiceActive
	v.age = age
	v.graph.NoteOn(v.ctx())
}

// Release moves an Active voice to Releasing and tells the graph the key
// is up. Releasing or Free voices are left alone.
func (v *Voice) Release() {
	if v.state != VoiceActive {
		return
	}
	v.state = VoiceReleasing
	v.graph.NoteOff(v.ctx())
}

// RenderInto renders the voice's graph into out. A Releasing voice whose
// graph has gone quiet frees itself here.
func (v *Voice) RenderInto(out []float32) {
	v.graph.Render(out, v.ctx())
	if v.state == VoiceReleasing && !v.graph.Active() {
		v.Free()
	}
}

// Free returns the voice to the pool.
func (v *Voice) Free() {
	v.state = VoiceFree
	v.note = 0
	v.velocity = 0
}

func (v *Voice) IsFree() bool {
	return v.state == VoiceFree
}

// IsActive reports whether the voice is making sound, including the
// release tail.
func (v *Voice) IsActive() bool {
	return v.state == VoiceActive || v.state == VoiceReleasing
}

func (v *Voice) EnvelopeLevel() (float32, bool) {
	return v.graph.EnvelopeLevel()
}

func (v *Voice) Note() uint8       { return v.note }
func (v *Voice) Age() uint64       { return v.age }
func (v *Voice) State() VoiceState { return v.state }
