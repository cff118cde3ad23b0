// Package sequencer is the thin control-side collaborator that turns
// step-pattern data into note events for the synth queue. It never touches
// audio; it only advances a frame clock and pushes messages at step
// boundaries.
package sequencer

import (
	"github.com/dmeehan/polysynth-go/internal/synth"
)

// Step is one slot of a pattern. A zero Velocity is a rest. Gate is the
// fraction of the step the note is held before the note-off; values
// outside (0, 1] mean a full step.
type Step struct {
	Note     uint8
	Velocity uint8
	Gate     float32
}

// Pattern is a loopable sequence of steps.
type Pattern struct {
	Steps        []Step
	StepsPerBeat int // defaults to 4 (sixteenth notes)
}

func (p Pattern) stepsPerBeat() int {
	if p.StepsPerBeat < 1 {
		return 4
	}
	return p.StepsPerBeat
}

// Options configures playback.
type Options struct {
	Loop bool
}

// Sequencer walks a pattern against a sample clock and feeds the synth
// queue. Advance is meant to be called with the block length right before
// each render, so events land on block boundaries, which is the synth's
// event granularity anyway.
type Sequencer struct {
	queue       *synth.Queue
	pattern     Pattern
	stepSamples float64
	loop        bool

	frame    uint64  // sample clock
	step     int     // index of the next step to trigger
	nextStep float64 // absolute frame of the next step trigger
	offFrame uint64
	offNote  uint8
	havePend bool
	done     bool
}

func New(queue *synth.Queue, pattern Pattern, sampleRate, bpm float32, opts Options) *Sequencer {
	if bpm <= 0 {
		bpm = 120
	}
	if sampleRate <= 0 {
		sampleRate = 48000
	}
	return &Sequencer{
		queue:       queue,
		pattern:     pattern,
		stepSamples: float64(sampleRate) * 60 / (float64(bpm) * float64(pattern.stepsPerBeat())),
		loop:        opts.Loop,
	}
}

// Advance moves the clock forward by frames, pushing every note event
// whose time falls inside the window. Call it once per audio block with
// the block length.
func (s *Sequencer) Advance(frames int) {
	if s.done || frames <= 0 {
		return
	}
	end := s.frame + uint64(frames)
	for {
		next, ok := s.nextEventFrame()
		if !ok || next >= end {
			break
		}
		s.frame = next
		s.fire()
		if s.done {
			return
		}
	}
	s.frame = end
}

// nextEventFrame reports the frame of the earliest pending event. A due
// note-off wins a tie with a step trigger so a retriggered note is
// released before it restarts.
func (s *Sequencer) nextEventFrame() (uint64, bool) {
	stepDue := s.stepPending()
	switch {
	case s.havePend && stepDue:
		if s.offFrame <= uint64(s.nextStep) {
			return s.offFrame, true
		}
		return uint64(s.nextStep), true
	case s.havePend:
		return s.offFrame, true
	case stepDue:
		return uint64(s.nextStep), true
	}
	return 0, false
}

func (s *Sequencer) stepPending() bool {
	if len(s.pattern.Steps) == 0 {
		return false
	}
	return s.loop || s.step < len(s.pattern.Steps)
}

// fire emits whichever event is due at the current frame.
func (s *Sequencer) fire() {
	if s.havePend && s.offFrame <= s.frame {
		s.queue.Push(synth.NoteOff(s.offNote, 0))
		s.havePend = false
		if !s.stepPending() {
			s.done = true
		}
		return
	}

	st := s.pattern.Steps[s.step]
	if st.Velocity > 0 {
		s.queue.Push(synth.NoteOn(st.Note, st.Velocity))
		gate := st.Gate
		if gate <= 0 || gate > 1 {
			gate = 1
		}
		s.offNote = st.Note
		s.offFrame = s.frame + uint64(float64(gate)*s.stepSamples)
		s.havePend = true
	}
	s.step++
	s.nextStep += s.stepSamples
	if s.step >= len(s.pattern.Steps) {
		if s.loop {
			s.step = 0
		} else if !s.havePend {
			s.done = true
		}
	}
}

// Finished reports whether a non-looping pattern has played out, note-offs
// included.
func (s *Sequencer) Finished() bool {
	return s.done
}

// Frame returns the current position of the sample clock.
func (s *Sequencer) Frame() uint64 {
	return s.frame
}

// Reset rewinds the pattern to the beginning.
func (s *Sequencer) Reset() {
	s.frame = 0
	s.step = 0
	s.nextStep = 0
	s.havePend = false
	s.done = false
}
