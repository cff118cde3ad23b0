package dsp

import (
	"math"
	"testing"
)

func renderConstant(f *SVF, value float32, samples int, sampleRate float32) float32 {
	buf := make([]float32, 64)
	var last float32
	for done := 0; done < samples; done += len(buf) {
		for i := range buf {
			buf[i] = value
		}
		f.Render(buf, sampleRate)
		last = buf[len(buf)-1]
	}
	return last
}

func TestLowpassPassesDC(t *testing.T) {
	f := NewSVF(FilterLowpass, 500)
	out := renderConstant(&f, 1, 4800, 48000)
	if math.Abs(float64(out)-1) > 0.01 {
		t.Errorf("lowpass DC response = %v, want ~1.0", out)
	}
}

func TestHighpassBlocksDC(t *testing.T) {
	f := NewSVF(FilterHighpass, 500)
	out := renderConstant(&f, 1, 4800, 48000)
	if math.Abs(float64(out)) > 0.01 {
		t.Errorf("highpass DC response = %v, want ~0.0", out)
	}
}

func TestBandpassBlocksDC(t *testing.T) {
	f := NewSVF(FilterBandpass, 500)
	out := renderConstant(&f, 1, 4800, 48000)
	if math.Abs(float64(out)) > 0.01 {
		t.Errorf("bandpass DC response = %v, want ~0.0", out)
	}
}

func TestNotchPassesDC(t *testing.T) {
	f := NewSVF(FilterNotch, 500)
	out := renderConstant(&f, 1, 4800, 48000)
	if math.Abs(float64(out)-1) > 0.01 {
		t.Errorf("notch DC response = %v, want ~1.0", out)
	}
}

func TestFilterParameterClamping(t *testing.T) {
	f := NewSVF(FilterLowpass, -100)
	if got := f.Cutoff(); got != 20 {
		t.Errorf("negative cutoff clamped to %v, want 20", got)
	}
	f.SetCutoff(1e9)
	if got := f.Cutoff(); got != 20000 {
		t.Errorf("huge cutoff clamped to %v, want 20000", got)
	}
	f.SetResonance(5)
	if got := f.Resonance(); got != 1 {
		t.Errorf("resonance clamped to %v, want 1", got)
	}
	f.SetResonance(-1)
	if got := f.Resonance(); got != 0 {
		t.Errorf("resonance clamped to %v, want 0", got)
	}
}

func TestFilterStableWithResonance(t *testing.T) {
	f := NewSVF(FilterLowpass, 2000)
	f.SetResonance(1)
	osc := NewOscillator(WaveSawtooth)
	buf := make([]float32, 512)
	for i := 0; i < 100; i++ {
		osc.Render(buf, 440, 48000)
		f.Render(buf, 48000)
		for n, s := range buf {
			if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
				t.Fatalf("block %d sample %d not finite: %v", i, n, s)
			}
			if s < -20 || s > 20 {
				t.Fatalf("block %d sample %d diverged: %v", i, n, s)
			}
		}
	}
}

func TestFilterBlockSizeInvariance(t *testing.T) {
	const total = 1024
	src := make([]float32, total)
	osc := NewOscillator(WaveSawtooth)
	osc.Render(src, 440, 48000)

	whole := make([]float32, total)
	copy(whole, src)
	fw := NewSVF(FilterLowpass, 1000)
	fw.Render(whole, 48000)

	pieces := make([]float32, total)
	copy(pieces, src)
	fc := NewSVF(FilterLowpass, 1000)
	for off := 0; off < total; off += 256 {
		fc.Render(pieces[off:off+256], 48000)
	}
	for i := range whole {
		if whole[i] != pieces[i] {
			t.Fatalf("sample %d differs: whole %v, chunked %v", i, whole[i], pieces[i])
		}
	}
}

func BenchmarkSVFRender(b *testing.B) {
	f := NewSVF(FilterLowpass, 1000)
	buf := make([]float32, 512)
	for i := range buf {
		buf[i] = float32(i%64)/32 - 1
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Render(buf, 48000)
	}
}
