package dsp

import "testing"

func TestADSRPhaseTiming(t *testing.T) {
	// At 1000 Hz with a 0.1 s attack, sample 100 must complete the attack:
	// not a sample early, and float rounding must not stretch it.
	env := NewADSR(0.1, 0.1, 0.7, 0.2)
	env.NoteOn()
	var level float32
	for i := 0; i < 99; i++ {
		level = env.NextSample(1000)
	}
	if env.State() != EnvAttack {
		t.Fatal("envelope left Attack before the attack time elapsed")
	}
	level = env.NextSample(1000)
	if level != 1 {
		t.Errorf("level at end of attack = %v, want 1", level)
	}
	if env.State() == EnvAttack {
		t.Error("envelope still in Attack after attack time elapsed")
	}

	// 0.1 s decay: 100 more samples down to the sustain level.
	for i := 0; i < 100; i++ {
		level = env.NextSample(1000)
	}
	if env.State() != EnvSustain || level != 0.7 {
		t.Errorf("after decay: state %v, level %v, want Sustain at 0.7", env.State(), level)
	}
}

func TestADSRLevelBounds(t *testing.T) {
	cases := []struct {
		name       string
		a, d, s, r float32
		offAfter   int // samples before note-off
	}{
		{"mid attack release", 0.5, 0.1, 0.7, 0.2, 100},
		{"mid decay release", 0.01, 0.5, 0.3, 0.1, 1000},
		{"sustain release", 0.01, 0.05, 0.6, 0.3, 10000},
		{"zero-ish times", 0, 0, 0.5, 0, 10},
		{"sustain above one", 0.05, 0.05, 1.5, 0.1, 5000},
	}
	const sampleRate = 48000
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := NewADSR(tc.a, tc.d, tc.s, tc.r)
			env.NoteOn()
			for i := 0; i < tc.offAfter; i++ {
				if l := env.NextSample(sampleRate); l < 0 || l > 1 {
					t.Fatalf("sample %d: level %v outside [0, 1]", i, l)
				}
			}
			env.NoteOff(sampleRate)
			for i := 0; i < sampleRate; i++ {
				if l := env.NextSample(sampleRate); l < 0 || l > 1 {
					t.Fatalf("release sample %d: level %v outside [0, 1]", i, l)
				}
			}
		})
	}
}

func TestReleaseRampsFromCurrentLevel(t *testing.T) {
	// Note-off mid-attack must release from the partial level, not from 1.0.
	env := NewADSR(1.0, 0.1, 0.7, 0.1)
	env.NoteOn()
	const sampleRate = 1000
	for i := 0; i < 200; i++ { // 0.2 s into a 1 s attack
		env.NextSample(sampleRate)
	}
	atOff := env.Level()
	if atOff > 0.3 {
		t.Fatalf("level before note-off = %v, expected partial attack", atOff)
	}
	env.NoteOff(sampleRate)
	first := env.NextSample(sampleRate)
	if first > atOff+0.01 {
		t.Errorf("release started at %v, must ramp from current level %v", first, atOff)
	}
}

func TestReleaseReachesIdle(t *testing.T) {
	env := NewADSR(0.01, 0.01, 0.8, 0.05)
	env.NoteOn()
	const sampleRate = 48000
	for i := 0; i < 4800; i++ {
		env.NextSample(sampleRate)
	}
	env.NoteOff(sampleRate)
	for i := 0; i < 4800; i++ {
		env.NextSample(sampleRate)
	}
	if env.Active() {
		t.Error("envelope still active long after release completed")
	}
	if l := env.NextSample(sampleRate); l != 0 {
		t.Errorf("idle level = %v, want 0", l)
	}
}

func TestIdleIgnoresNoteOff(t *testing.T) {
	env := NewADSR(0.01, 0.01, 0.5, 0.1)
	env.NoteOff(48000)
	if env.Active() {
		t.Error("note-off on idle envelope must stay idle")
	}
}

func TestRetriggerDuringRelease(t *testing.T) {
	env := NewADSR(0.01, 0.01, 0.6, 0.5)
	const sampleRate = 48000
	env.NoteOn()
	for i := 0; i < 2400; i++ {
		env.NextSample(sampleRate)
	}
	env.NoteOff(sampleRate)
	for i := 0; i < 100; i++ {
		env.NextSample(sampleRate)
	}
	env.NoteOn()
	for i := 0; i < 1000; i++ {
		if l := env.NextSample(sampleRate); l < 0 || l > 1 {
			t.Fatalf("retrigger sample %d: level %v outside [0, 1]", i, l)
		}
	}
	if !env.Active() {
		t.Error("retriggered envelope should be active")
	}
}

func BenchmarkADSRRender(b *testing.B) {
	env := NewADSR(0.01, 0.1, 0.7, 0.3)
	env.NoteOn()
	buf := make([]float32, 512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		env.Render(buf, 48000)
	}
}
