package dsp

// maxDelaySeconds bounds the delay-line capacity; two seconds covers every
// delay/chorus setting the graph nodes accept.
const (
	maxDelaySeconds    = 2.0
	delayLineReference = 96000
)

// DelayLine is a fixed-capacity circular buffer with fractional
// (linearly interpolated) reads, the backing store for delay and chorus.
// It is allocated once and never resized.
type DelayLine struct {
	buf []float32
	pos int
}

func NewDelayLine() DelayLine {
	return DelayLine{
		buf: make([]float32, int(maxDelaySeconds*delayLineReference)),
	}
}

// Write pushes a sample and advances the cursor.
func (d *DelayLine) Write(s float32) {
	d.buf[d.pos] = s
	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}
}

// ReadInterpolated reads delaySamples behind the write cursor with linear
// interpolation. The delay is clamped into the valid range of the buffer.
func (d *DelayLine) ReadInterpolated(delaySamples float32) float32 {
	n := float32(len(d.buf))
	delay := clamp(delaySamples, 1, n-2)
	readPos := float32(d.pos) - delay
	for readPos < 0 {
		readPos += n
	}
	idx := int(readPos)
	frac := readPos - float32(idx)
	idx2 := idx + 1
	if idx2 >= len(d.buf) {
		idx2 = 0
	}
	return d.buf[idx]*(1-frac) + d.buf[idx2]*frac
}

func (d *DelayLine) Reset() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.pos = 0
}
