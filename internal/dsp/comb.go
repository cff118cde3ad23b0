package dsp

// Comb is a recursive delay-plus-feedback filter with one-pole damping on
// the fed-back signal. The buffer is allocated once at the given capacity;
// the delay is changed at runtime by reassigning the logical length, the
// write cursor is re-wrapped rather than reset to avoid a transient.
type Comb struct {
	buf         []float32
	length      int
	pos         int
	feedback    float32
	damping     float32
	filterStore float32
}

func NewComb(capacity int) Comb {
	if capacity < 1 {
		capacity = 1
	}
	return Comb{
		buf:    make([]float32, capacity),
		length: capacity,
	}
}

// SetLength reassigns the logical delay length in samples without
// reallocating.
func (c *Comb) SetLength(n int) {
	if n < 1 {
		n = 1
	}
	if n > len(c.buf) {
		n = len(c.buf)
	}
	c.length = n
	if c.pos >= n {
		c.pos %= n
	}
}

// SetFeedback clamps below 1.0 so the recursion stays contractive.
func (c *Comb) SetFeedback(fb float32) {
	c.feedback = clamp(fb, 0, 0.98)
}

// SetDamping sets the one-pole lowpass coefficient applied to the feedback
// path (0 = bright, 1 = fully damped).
func (c *Comb) SetDamping(d float32) {
	c.damping = clamp(d, 0, 1)
}

func (c *Comb) Process(in float32) float32 {
	out := c.buf[c.pos]
	c.filterStore = out*(1-c.damping) + c.filterStore*c.damping
	c.buf[c.pos] = in + c.filterStore*c.feedback
	c.pos++
	if c.pos >= c.length {
		c.pos = 0
	}
	return out
}

func (c *Comb) Reset() {
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.filterStore = 0
	c.pos = 0
}

// Capacity reports the fixed buffer size, for tests that assert no
// reallocation happens on length changes.
func (c *Comb) Capacity() int {
	return len(c.buf)
}

// Allpass passes all frequencies at equal gain while smearing phase; the
// diffusion stage of the reverb. Same fixed-capacity, logical-length
// circular buffer discipline as Comb.
type Allpass struct {
	buf    []float32
	length int
	pos    int
	g      float32
}

func NewAllpass(capacity int, g float32) Allpass {
	if capacity < 1 {
		capacity = 1
	}
	return Allpass{
		buf:    make([]float32, capacity),
		length: capacity,
		g:      clamp(g, 0, 0.98),
	}
}

func (a *Allpass) SetLength(n int) {
	if n < 1 {
		n = 1
	}
	if n > len(a.buf) {
		n = len(a.buf)
	}
	a.length = n
	if a.pos >= n {
		a.pos %= n
	}
}

func (a *Allpass) Process(in float32) float32 {
	delayed := a.buf[a.pos]
	out := -a.g*in + delayed
	a.buf[a.pos] = in + a.g*out
	a.pos++
	if a.pos >= a.length {
		a.pos = 0
	}
	return out
}

func (a *Allpass) Reset() {
	for i := range a.buf {
		a.buf[i] = 0
	}
	a.pos = 0
}
