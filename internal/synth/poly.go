package synth

import (
	"math"
	"sync/atomic"

	"github.com/dmeehan/polysynth-go/internal/graph"
)

// VoiceFactory builds one voice graph. The pool calls it once per slot at
// construction; nothing is built on the render path.
type VoiceFactory func() graph.Node

// DefaultMaxVoices is the pool size used when a caller passes zero.
const DefaultMaxVoices = 16

// PolySynth drives a fixed pool of voices from a message queue. RenderBlock
// is the only method meant for the audio side; it allocates nothing, takes
// no locks, and drains the queue with non-blocking pops. The master gain
// cell is the one piece of state the control side may touch concurrently,
// and it is a single atomic word.
type PolySynth struct {
	voices       []Voice
	queue        *Queue
	scratch      []float32
	frameCounter uint64
	sampleRate   float32
	masterGain   atomic.Uint32 // float32 bits
}

func NewPolySynth(sampleRate float32, maxVoices int, factory VoiceFactory, queue *Queue) *PolySynth {
	if maxVoices < 1 {
		maxVoices = DefaultMaxVoices
	}
	p := &PolySynth{
		voices:     make([]Voice, 0, maxVoices),
		queue:      queue,
		scratch:    make([]float32, graph.MaxBlockSize),
		sampleRate: sampleRate,
	}
	for i := 0; i < maxVoices; i++ {
		p.voices = append(p.voices, NewVoice(factory(), sampleRate))
	}
	p.SetMasterGain(1)
	return p
}

// SetMasterGain sets the output gain, clamped to [0, 1]. Safe to call from
// the control side while the audio side renders.
func (p *PolySynth) SetMasterGain(gain float32) {
	if gain < 0 {
		gain = 0
	}
	if gain > 1 {
		gain = 1
	}
	p.masterGain.Store(math.Float32bits(gain))
}

// MasterGain returns the current output gain.
func (p *PolySynth) MasterGain() float32 {
	return math.Float32frombits(p.masterGain.Load())
}

func (p *PolySynth) SampleRate() float32 {
	return p.sampleRate
}

// RenderBlock fills out with the sum of all sounding voices. Blocks larger
// than MaxBlockSize are rendered in chunks so callers with oversized
// device periods still work.
func (p *PolySynth) RenderBlock(out []float32) {
	for len(out) > graph.MaxBlockSize {
		p.renderChunk(out[:graph.MaxBlockSize])
		out = out[graph.MaxBlockSize:]
	}
	p.renderChunk(out)
}

func (p *PolySynth) renderChunk(out []float32) {
	p.drainMessages()

	for i := range out {
		out[i] = 0
	}
	gain := p.MasterGain()
	for vi := range p.voices {
		v := &p.voices[vi]
		if !v.IsActive() {
			continue
		}
		buf := p.scratch[:len(out)]
		for i := range buf {
			buf[i] = 0
		}
		v.RenderInto(buf)
		for i := range out {
			out[i] += buf[i] * gain
		}
	}
	p.frameCounter += uint64(len(out))
}

// drainMessages applies every queued control event at the block boundary.
func (p *PolySynth) drainMessages() {
	for {
		msg, ok := p.queue.TryPop()
		if !ok {
			return
		}
		switch msg.Kind {
		case KindNoteOn:
			if v := p.allocateVoice(); v != nil {
				v.Start(msg.Note, msg.Velocity, p.frameCounter)
			}
		case KindNoteOff:
			if v := p.findVoice(msg.Note); v != nil {
				v.Release()
			}
		case KindAllNotesOff:
			for i := range p.voices {
				if p.voices[i].IsActive() {
					p.voices[i].Release()
				}
			}
		}
	}
}

// allocateVoice prefers a Free voice; with none available it steals the
// oldest Releasing voice. Active voices are never stolen, so a note-on
// with a saturated pool of held notes is dropped.
func (p *PolySynth) allocateVoice() *Voice {
	for i := range p.voices {
		if p.voices[i].IsFree() {
			return &p.voices[i]
		}
	}
	var steal *Voice
	for i := range p.voices {
		v := &p.voices[i]
		if v.State() != VoiceReleasing {
			continue
		}
		if steal == nil || v.Age() < steal.Age() {
			steal = v
		}
	}
	return steal
}

// findVoice returns the sounding voice bound to note, or nil. A note-off
// for an unbound note is a no-op upstream.
func (p *PolySynth) findVoice(note uint8) *Voice {
	for i := range p.voices {
		v := &p.voices[i]
		if v.Note() == note && v.IsActive() {
			return v
		}
	}
	return nil
}

// ActiveVoiceCount reports how many voices are sounding, release tails
// included.
func (p *PolySynth) ActiveVoiceCount() int {
	n := 0
	for i := range p.voices {
		if p.voices[i].IsActive() {
			n++
		}
	}
	return n
}

// FrameCounter reports the total frames rendered so far.
func (p *PolySynth) FrameCounter() uint64 {
	return p.frameCounter
}
