package dsp

import (
	"math"
	"testing"
)

func TestReverbProducesTail(t *testing.T) {
	r := NewSchroederReverb(48000)
	r.Process(1)
	var max float32
	for i := 0; i < 20000; i++ {
		out := r.Process(0)
		if out > max {
			max = out
		}
	}
	if max < 0.001 {
		t.Error("expected a reverb tail after an impulse")
	}
}

func TestReverbStableUnderConstantInput(t *testing.T) {
	settings := []struct {
		room, damp float32
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 0},
		{1, 1},
	}
	for _, s := range settings {
		r := NewSchroederReverb(48000)
		r.SetRoomSize(s.room)
		r.SetDamping(s.damp)
		for i := 0; i < 10000; i++ {
			out := r.Process(1)
			if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
				t.Fatalf("room=%v damp=%v: non-finite output at sample %d", s.room, s.damp, i)
			}
			if out < -100 || out > 100 {
				t.Fatalf("room=%v damp=%v: runaway output %v at sample %d", s.room, s.damp, out, i)
			}
		}
	}
}

func TestReverbFeedbackMapping(t *testing.T) {
	r := NewSchroederReverb(48000)
	r.SetRoomSize(0)
	if fb := r.combs[0].feedback; math.Abs(float64(fb)-0.70) > 1e-6 {
		t.Errorf("room 0 feedback = %v, want 0.70", fb)
	}
	r.SetRoomSize(1)
	if fb := r.combs[0].feedback; math.Abs(float64(fb)-0.98) > 1e-6 {
		t.Errorf("room 1 feedback = %v, want 0.98", fb)
	}
	r.SetRoomSize(7)
	if got := r.RoomSize(); got != 1 {
		t.Errorf("room size clamped to %v, want 1", got)
	}
}

func TestSampleRateChangeDoesNotReallocate(t *testing.T) {
	r := NewSchroederReverb(48000)
	caps := make([]int, numCombs)
	for i := range r.combs {
		caps[i] = r.combs[i].Capacity()
	}
	r.SetSampleRate(96000)
	r.SetSampleRate(22050)
	for i := range r.combs {
		if r.combs[i].Capacity() != caps[i] {
			t.Fatalf("comb %d capacity changed on sample-rate switch", i)
		}
		if r.combs[i].pos >= r.combs[i].length {
			t.Fatalf("comb %d cursor %d not re-wrapped into length %d", i, r.combs[i].pos, r.combs[i].length)
		}
	}
}

func TestCombLengthRewrapKeepsCursorValid(t *testing.T) {
	c := NewComb(1000)
	c.SetFeedback(0.9)
	for i := 0; i < 900; i++ {
		c.Process(1)
	}
	c.SetLength(200)
	if c.pos >= 200 {
		t.Fatalf("cursor %d not wrapped into new length", c.pos)
	}
	for i := 0; i < 1000; i++ {
		out := c.Process(0.5)
		if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
			t.Fatalf("non-finite output after length change at %d", i)
		}
	}
}

func TestAllpassFormula(t *testing.T) {
	a := NewAllpass(4, 0.5)
	// First sample: delayed value is 0, so out = -g*in.
	out := a.Process(1)
	if math.Abs(float64(out)+0.5) > 1e-6 {
		t.Errorf("first allpass output = %v, want -0.5", out)
	}
}

func BenchmarkSchroederReverb(b *testing.B) {
	r := NewSchroederReverb(48000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Process(0.5)
	}
}
