// Package graph provides the block-based signal-graph nodes that voices are
// assembled from. A voice is a tree of nodes composed by ownership: each
// combinator owns its children outright, so no state is shared across a
// render call. Rendering is in place, block by block, with state carried
// forward between blocks.
package graph

import "math"

// MaxBlockSize is the largest block a node must be able to render. All
// internal scratch buffers are sized to it once at construction.
const MaxBlockSize = 4096

// Context carries the per-call rendering parameters. It is produced fresh
// for every render and note event and is never mutated by nodes.
type Context struct {
	SampleRate float32 // Hz, must be > 0 for audible output
	Frequency  float32 // target pitch in Hz for pitch-tracking nodes
	Velocity   float32 // 0..127
	Time       float64 // seconds since the engine started
}

// ContextForNote builds a Context whose frequency is derived from a MIDI
// note number.
func ContextForNote(sampleRate float32, note, velocity uint8, time float64) Context {
	return Context{
		SampleRate: sampleRate,
		Frequency:  MIDINoteToFreq(note),
		Velocity:   float32(velocity),
		Time:       time,
	}
}

// MIDINoteToFreq converts a MIDI note number to Hz with A4 (note 69) at
// 440 Hz.
func MIDINoteToFreq(note uint8) float32 {
	return float32(440 * math.Pow(2, (float64(note)-69)/12))
}

// Node is the uniform contract every processing stage implements.
//
// Render fills out entirely (len(out) <= MaxBlockSize) and may be called
// repeatedly with state carried forward. Effect nodes treat out as both
// input and output. NoteOn and NoteOff are no-ops on pass-through nodes;
// combinators forward them to every child. Active reports whether the node
// is still producing non-silent output. EnvelopeLevel reports the current
// amplitude-envelope level when the subtree contains one; the second return
// is false otherwise.
type Node interface {
	Render(out []float32, ctx Context)
	NoteOn(ctx Context)
	NoteOff(ctx Context)
	Active() bool
	EnvelopeLevel() (float32, bool)
}

// Base provides the default note handling for nodes that ignore note
// events. Embed it and override what the node actually reacts to.
type Base struct{}

func (Base) NoteOn(Context)                 {}
func (Base) NoteOff(Context)                {}
func (Base) Active() bool                   { return true }
func (Base) EnvelopeLevel() (float32, bool) { return 0, false }

// silenceFloor is the amplitude below which a block counts as silent for
// activity tracking. Roughly -80 dBFS.
const silenceFloor = 1e-4

// maxTailSeconds caps how long an effect may claim to ring out after its
// input goes silent, so a voice with an extreme feedback setting still
// frees eventually.
const maxTailSeconds = 10

// Param identifies a modulatable parameter on a node.
type Param int

const (
	ParamFrequency Param = iota
	ParamDetune
	ParamCutoff
	ParamResonance
	ParamRoomSize
	ParamDamping
	ParamMix
	ParamDelayTime
	ParamFeedback
	ParamDrive
	ParamRate
	ParamDepth
)

// Modulatable is implemented by nodes whose parameters can be driven by a
// Modulate combinator. ParamValue reports the current value of a parameter
// and whether the node supports it. ApplyModulation pushes a new value; the
// node clamps it into its own valid range.
type Modulatable interface {
	Node
	ParamValue(p Param) (float32, bool)
	ApplyModulation(p Param, value float32)
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
