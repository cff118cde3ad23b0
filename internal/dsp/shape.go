package dsp

import "math"

// Buffer-level helpers shared by the graph combinators and the distortion
// node.

// MultiplyInPlace multiplies dst by src sample-by-sample: envelope shaping
// when src is unipolar, ring modulation when src is audio-rate.
func MultiplyInPlace(dst, src []float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] *= src[i]
	}
}

// MixInPlace blends src into dst with weights (1-balance, balance). The
// weights sum to 1 so an equal mix cannot exceed the peak of either input.
func MixInPlace(dst, src []float32, balance float32) {
	b := clamp(balance, 0, 1)
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = dst[i]*(1-b) + src[i]*b
	}
}

// ApplyDryWet blends the stored dry signal back into the processed buffer.
func ApplyDryWet(dry []float32, wet []float32, mix float32) {
	m := clamp(mix, 0, 1)
	n := len(wet)
	if len(dry) < n {
		n = len(dry)
	}
	for i := 0; i < n; i++ {
		wet[i] = dry[i]*(1-m) + wet[i]*m
	}
}

// BlockAverage reduces a block to one scalar for block-rate modulation.
func BlockAverage(buf []float32) float32 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, s := range buf {
		sum += float64(s)
	}
	return float32(sum / float64(len(buf)))
}

// SoftClipBuffer applies tanh saturation after the drive gain.
func SoftClipBuffer(buf []float32, drive float32) {
	for i, s := range buf {
		buf[i] = float32(math.Tanh(float64(s * drive)))
	}
}

// HardClipBuffer clamps the driven signal at the threshold.
func HardClipBuffer(buf []float32, drive, threshold float32) {
	t := maxF32(threshold, 0.01)
	for i, s := range buf {
		buf[i] = clamp(s*drive, -t, t)
	}
}

// FoldbackBuffer reflects the driven signal back across the threshold
// instead of clamping, producing metallic harmonics.
func FoldbackBuffer(buf []float32, drive, threshold float32) {
	t := float64(maxF32(threshold, 0.01))
	for i, s := range buf {
		x := float64(s * drive)
		if x > t || x < -t {
			x = math.Abs(math.Abs(math.Mod(x-t, 4*t))-2*t) - t
		}
		buf[i] = float32(x)
	}
}
