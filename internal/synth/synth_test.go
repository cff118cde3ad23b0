package synth

import (
	"testing"

	"github.com/dmeehan/polysynth-go/internal/graph"
)

func testFactory() graph.Node {
	return graph.NewAmplify(
		graph.NewSawtooth(),
		graph.NewADSR(0.01, 0.1, 0.7, 0.5),
	)
}

func newTestSynth(voices int) (*PolySynth, *Queue) {
	q := NewQueue(64)
	return NewPolySynth(48000, voices, testFactory, q), q
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	if !q.Push(NoteOn(60, 100)) || !q.Push(NoteOn(64, 100)) {
		t.Fatal("pushes within capacity must succeed")
	}
	if q.Push(NoteOn(67, 100)) {
		t.Error("push to a full queue must report a drop")
	}
	if q.Len() != 2 {
		t.Errorf("queue length = %d, want 2", q.Len())
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(8)
	q.Push(NoteOn(60, 100))
	q.Push(NoteOff(60, 0))
	q.Push(AllNotesOff())

	wantKinds := []MessageKind{KindNoteOn, KindNoteOff, KindAllNotesOff}
	for i, want := range wantKinds {
		msg, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop %d: queue empty early", i)
		}
		if msg.Kind != want {
			t.Fatalf("pop %d: kind %d, want %d", i, msg.Kind, want)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("pop from drained queue must fail")
	}
}

func TestPolyphonyAllocatesUntilSaturated(t *testing.T) {
	p, q := newTestSynth(4)
	buf := make([]float32, 128)

	for _, note := range []uint8{60, 64, 67} {
		q.Push(NoteOn(note, 100))
	}
	p.RenderBlock(buf)
	if got := p.ActiveVoiceCount(); got != 3 {
		t.Fatalf("active voices = %d, want 3", got)
	}

	q.Push(NoteOn(71, 100))
	p.RenderBlock(buf)
	if got := p.ActiveVoiceCount(); got != 4 {
		t.Fatalf("active voices = %d, want 4", got)
	}

	// Pool saturated with held notes: the fifth note is dropped.
	q.Push(NoteOn(74, 100))
	p.RenderBlock(buf)
	if got := p.ActiveVoiceCount(); got != 4 {
		t.Fatalf("active voices after drop = %d, want 4", got)
	}
	if v := p.findVoice(74); v != nil {
		t.Error("note 74 should have been dropped, not allocated")
	}
}

func TestStealOldestReleasingVoice(t *testing.T) {
	p, q := newTestSynth(4)
	buf := make([]float32, 128)

	notes := []uint8{60, 64, 67, 71}
	for _, n := range notes {
		q.Push(NoteOn(n, 100))
		p.RenderBlock(buf) // separate blocks give each voice a distinct age
	}

	// Release the two oldest notes.
	q.Push(NoteOff(60, 0))
	q.Push(NoteOff(64, 0))
	p.RenderBlock(buf)

	q.Push(NoteOn(76, 100))
	p.RenderBlock(buf)

	// The voice that held note 60 was allocated first, so it is the steal
	// target; note 64 keeps releasing.
	if v := p.findVoice(76); v == nil {
		t.Fatal("new note not allocated from the releasing set")
	}
	if v := p.findVoice(64); v == nil || v.State() != VoiceReleasing {
		t.Error("younger releasing voice should not have been stolen")
	}
	for _, held := range []uint8{67, 71} {
		if v := p.findVoice(held); v == nil || v.State() != VoiceActive {
			t.Errorf("held note %d was disturbed by stealing", held)
		}
	}
}

func TestNeverStealActiveVoice(t *testing.T) {
	p, q := newTestSynth(2)
	buf := make([]float32, 128)

	q.Push(NoteOn(60, 100))
	q.Push(NoteOn(64, 100))
	p.RenderBlock(buf)

	q.Push(NoteOn(67, 100))
	p.RenderBlock(buf)

	for _, held := range []uint8{60, 64} {
		if v := p.findVoice(held); v == nil || v.State() != VoiceActive {
			t.Errorf("held note %d was stolen", held)
		}
	}
	if v := p.findVoice(67); v != nil {
		t.Error("note 67 should have been dropped with no releasing voices")
	}
}

func TestNoteOffUnboundNoteIsNoOp(t *testing.T) {
	p, q := newTestSynth(4)
	buf := make([]float32, 128)

	q.Push(NoteOn(60, 100))
	p.RenderBlock(buf)

	q.Push(NoteOff(99, 0))
	p.RenderBlock(buf)

	if v := p.findVoice(60); v == nil || v.State() != VoiceActive {
		t.Error("unrelated note-off disturbed a sounding voice")
	}
}

func TestAllNotesOff(t *testing.T) {
	p, q := newTestSynth(4)
	buf := make([]float32, 128)

	for _, n := range []uint8{60, 64, 67} {
		q.Push(NoteOn(n, 100))
	}
	p.RenderBlock(buf)

	q.Push(AllNotesOff())
	p.RenderBlock(buf)

	for i := range p.voices {
		if p.voices[i].State() == VoiceActive {
			t.Fatal("voice still Active after all-notes-off")
		}
	}
	// Release tails eventually free every voice.
	for i := 0; i < 400 && p.ActiveVoiceCount() > 0; i++ {
		p.RenderBlock(buf)
	}
	if got := p.ActiveVoiceCount(); got != 0 {
		t.Errorf("voices never freed after release: %d still active", got)
	}
}

func TestVoiceFreesItselfWhenGraphGoesQuiet(t *testing.T) {
	p, q := newTestSynth(1)
	buf := make([]float32, 512)

	q.Push(NoteOn(60, 100))
	p.RenderBlock(buf)
	q.Push(NoteOff(60, 0))

	// Release is 0.5 s at 48 kHz, about 47 blocks of 512.
	for i := 0; i < 100; i++ {
		p.RenderBlock(buf)
	}
	if !p.voices[0].IsFree() {
		t.Error("voice not freed after its envelope finished")
	}
}

func TestRenderSumsAndAppliesGain(t *testing.T) {
	p, q := newTestSynth(4)
	buf := make([]float32, 512)

	q.Push(NoteOn(60, 100))
	p.RenderBlock(buf)
	var energy float64
	for _, s := range buf {
		energy += float64(s * s)
	}
	if energy == 0 {
		t.Fatal("sounding voice produced silence")
	}

	p.SetMasterGain(0)
	p.RenderBlock(buf)
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d = %v with zero master gain", i, s)
		}
	}
	p.SetMasterGain(2)
	if g := p.MasterGain(); g != 1 {
		t.Errorf("master gain clamped to %v, want 1", g)
	}
}

func TestRenderChunksOversizedBlocks(t *testing.T) {
	p, q := newTestSynth(2)
	q.Push(NoteOn(69, 100))

	big := make([]float32, graph.MaxBlockSize*2+100)
	p.RenderBlock(big)
	if p.FrameCounter() != uint64(len(big)) {
		t.Errorf("frame counter = %d, want %d", p.FrameCounter(), len(big))
	}
}

func BenchmarkRenderBlock8Voices(b *testing.B) {
	p, q := newTestSynth(8)
	for n := uint8(60); n < 68; n++ {
		q.Push(NoteOn(n, 100))
	}
	buf := make([]float32, 512)
	p.RenderBlock(buf)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.RenderBlock(buf)
	}
}
