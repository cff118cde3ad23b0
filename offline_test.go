package polysynth

import (
	"encoding/binary"
	"testing"
)

func testPattern() Pattern {
	return Pattern{Steps: []Step{
		{Note: 60, Velocity: 100, Gate: 0.5},
		{Note: 64, Velocity: 100, Gate: 0.5},
		{Note: 67, Velocity: 100, Gate: 0.5},
		{},
	}}
}

func TestRenderPatternProducesAudio(t *testing.T) {
	lead, err := Voice("lead")
	if err != nil {
		t.Fatal(err)
	}
	samples := RenderPattern(testPattern(), lead, 48000, 120)
	if len(samples) == 0 {
		t.Fatal("no samples rendered")
	}
	var energy float64
	for _, s := range samples {
		energy += float64(s * s)
	}
	if energy == 0 {
		t.Error("pattern rendered to silence")
	}
	// Pattern is 4 steps of 6000 samples; the render includes them plus a
	// bounded tail.
	if len(samples) < 4*6000 {
		t.Errorf("render too short: %d samples", len(samples))
	}
	if len(samples) > 48000*10 {
		t.Errorf("render did not stop after tails: %d samples", len(samples))
	}
}

func TestRenderPatternEndsQuiet(t *testing.T) {
	pluck, err := Voice("pluck")
	if err != nil {
		t.Fatal(err)
	}
	samples := RenderPattern(testPattern(), pluck, 48000, 120)
	tail := samples[len(samples)-64:]
	for i, s := range tail {
		if s < -0.01 || s > 0.01 {
			t.Fatalf("tail sample %d = %v, expected near silence at end", i, s)
		}
	}
}

func TestRenderSecondsLength(t *testing.T) {
	kick, err := Voice("kick")
	if err != nil {
		t.Fatal(err)
	}
	samples := RenderSeconds(kick, 36, 44100, 1.5)
	if want := int(44100 * 1.5); len(samples) != want {
		t.Errorf("rendered %d samples, want %d", len(samples), want)
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1}
	wav := EncodeWAVFloat32LE(samples, 48000, 1)

	if len(wav) != 44+len(samples)*4 {
		t.Fatalf("wav length = %d", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint16(wav[20:]); got != 3 {
		t.Errorf("format tag = %d, want 3 (IEEE float)", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:]); got != 48000 {
		t.Errorf("sample rate = %d", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:]); got != uint32(len(samples)*4) {
		t.Errorf("data size = %d", got)
	}
}
