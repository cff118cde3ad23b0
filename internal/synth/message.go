// Package synth contains the polyphonic voice-management layer: a bounded
// non-blocking message queue from the control side, a fixed pool of voices,
// and the block renderer that drives them on the audio side.
package synth

// MessageKind discriminates control messages.
type MessageKind uint8

const (
	KindNoteOn MessageKind = iota
	KindNoteOff
	KindAllNotesOff
)

// Message is a control event. Note and Velocity are MIDI-style 0..127
// values; they are meaningful for note-on and note-off only.
type Message struct {
	Kind     MessageKind
	Note     uint8
	Velocity uint8
}

func NoteOn(note, velocity uint8) Message {
	return Message{Kind: KindNoteOn, Note: note, Velocity: velocity}
}

func NoteOff(note, velocity uint8) Message {
	return Message{Kind: KindNoteOff, Note: note, Velocity: velocity}
}

func AllNotesOff() Message {
	return Message{Kind: KindAllNotesOff}
}

// Queue is a bounded single-producer single-consumer message channel
// between the control side and the audio side. Neither end ever blocks:
// pushing to a full queue drops the message, popping from an empty queue
// returns immediately.
type Queue struct {
	ch chan Message
}

// DefaultQueueCapacity is enough for a dense block of sequencer events.
const DefaultQueueCapacity = 256

func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan Message, capacity)}
}

// Push enqueues a message without blocking. It reports whether the message
// was accepted; a full queue drops the newest message.
func (q *Queue) Push(msg Message) bool {
	select {
	case q.ch <- msg:
		return true
	default:
		return false
	}
}

// TryPop dequeues one message without blocking.
func (q *Queue) TryPop() (Message, bool) {
	select {
	case msg := <-q.ch:
		return msg, true
	default:
		return Message{}, false
	}
}

// Len reports the number of queued messages.
func (q *Queue) Len() int {
	return len(q.ch)
}
