package polysynth

import (
	"testing"

	intseq "github.com/dmeehan/polysynth-go/internal/sequencer"
)

func TestPlayerNotePathProducesAudio(t *testing.T) {
	p := NewPlayer(WithMaxVoices(4))
	if !p.NoteOn(60, 100) {
		t.Fatal("note-on not queued")
	}
	buf := make([]float32, 1024)
	p.source.Process(buf)

	var energy float64
	for _, s := range buf {
		energy += float64(s * s)
	}
	if energy == 0 {
		t.Error("note produced no audio")
	}
	if p.ActiveVoices() != 1 {
		t.Errorf("active voices = %d, want 1", p.ActiveVoices())
	}
}

func TestPlayerMasterVolume(t *testing.T) {
	p := NewPlayer(WithMasterGain(0.25))
	if got := p.MasterVolume(); got != 0.25 {
		t.Errorf("initial volume = %v", got)
	}
	p.SetMasterVolume(3)
	if got := p.MasterVolume(); got != 1 {
		t.Errorf("volume clamped to %v, want 1", got)
	}
}

func TestPlayerSampleTap(t *testing.T) {
	var tapped int
	p := NewPlayer(WithSampleTap(func(block []float32) { tapped += len(block) }))
	buf := make([]float32, 512)
	p.source.Process(buf)
	if tapped != 512 {
		t.Errorf("tap saw %d samples, want 512", tapped)
	}
}

func TestSourceFinishedOnlyAfterTails(t *testing.T) {
	p := NewPlayer(WithMaxVoices(4))
	seq := intseq.New(p.queue, Pattern{Steps: []Step{
		{Note: 60, Velocity: 100, Gate: 0.25},
	}}, 48000, 240, intseq.Options{})
	p.source.setSequencer(seq)

	buf := make([]float32, 512)
	p.source.Process(buf)
	if p.source.Finished() {
		t.Fatal("finished while the note is still sounding")
	}
	for i := 0; i < 200 && !p.source.Finished(); i++ {
		p.source.Process(buf)
	}
	if !p.source.Finished() {
		t.Error("sequenced playback never reported finished")
	}
}

func TestLiveSourceNeverFinishes(t *testing.T) {
	p := NewPlayer()
	buf := make([]float32, 256)
	p.source.Process(buf)
	if p.source.Finished() {
		t.Error("live session reported finished")
	}
}

func TestStopWithoutStartErrors(t *testing.T) {
	p := NewPlayer()
	if err := p.Stop(); err == nil {
		t.Error("expected an error stopping an idle player")
	}
}

func TestVoiceLookup(t *testing.T) {
	if _, err := Voice("lead"); err != nil {
		t.Errorf("lead missing: %v", err)
	}
	if _, err := Voice("theremin"); err == nil {
		t.Error("expected error for unknown voice")
	}
	names := VoiceNames()
	if len(names) != 13 {
		t.Errorf("library has %d voices, want 13", len(names))
	}
}
