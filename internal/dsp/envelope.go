package dsp

// EnvelopeState is the current phase of an ADSR envelope.
type EnvelopeState int

const (
	EnvIdle EnvelopeState = iota
	EnvAttack
	EnvDecay
	EnvSustain
	EnvRelease
)

// minEnvSeconds floors the timing parameters so per-sample increments stay
// finite.
const minEnvSeconds = 0.001

// ADSR is a linear attack-decay-sustain-release level generator. The level
// invariant is [0, 1] at every sample. Release always ramps from the level
// observed at note-off, so releasing mid-attack or mid-decay is click-free.
type ADSR struct {
	attack  float32 // seconds
	decay   float32 // seconds
	sustain float32 // level 0..1
	release float32 // seconds

	state           EnvelopeState
	level           float32
	attackStart     float32
	attackSamples   uint32
	attackProgress  uint32
	decaySamples    uint32
	decayProgress   uint32
	releaseStart    float32
	releaseSamples  uint32
	releaseProgress uint32
}

func NewADSR(attack, decay, sustain, release float32) ADSR {
	return ADSR{
		attack:  maxF32(attack, minEnvSeconds),
		decay:   maxF32(decay, minEnvSeconds),
		sustain: clamp(sustain, 0, 1),
		release: maxF32(release, minEnvSeconds),
	}
}

// NoteOn forces the envelope into Attack from wherever it is. The ramp
// length is recomputed on the next sample so a retrigger climbs from the
// current level at the normal attack slope.
func (e *ADSR) NoteOn() {
	e.state = EnvAttack
	e.attackSamples = 0
	e.releaseProgress = 0
}

// NoteOff starts a release ramp from the current level. A note-off while
// Idle is ignored.
func (e *ADSR) NoteOff(sampleRate float32) {
	if e.state == EnvIdle {
		return
	}
	e.releaseStart = e.level
	n := e.release * sampleRate
	if n < 1 {
		n = 1
	}
	e.releaseSamples = uint32(n)
	e.releaseProgress = 0
	e.state = EnvRelease
}

// NextSample advances the state machine one sample and returns the level.
func (e *ADSR) NextSample(sampleRate float32) float32 {
	if sampleRate <= 0 {
		return e.level
	}
	switch e.state {
	case EnvIdle:
		e.level = 0
	case EnvAttack:
		// Positional ramp: counting samples against a total computed at
		// phase entry keeps the phase length exact, where accumulating a
		// float32 increment can land just short of 1 and overstay.
		if e.attackSamples == 0 {
			e.attackStart = e.level
			n := (1 - e.level) * e.attack * sampleRate
			if n < 1 {
				n = 1
			}
			e.attackSamples = uint32(n + 0.5)
			e.attackProgress = 0
		}
		e.attackProgress++
		span := float32(e.attackProgress) / float32(e.attackSamples)
		e.level = e.attackStart + (1-e.attackStart)*span
		if e.attackProgress >= e.attackSamples {
			e.level = 1
			e.state = EnvDecay
			e.decaySamples = 0
		}
	case EnvDecay:
		if e.decaySamples == 0 {
			n := e.decay * sampleRate
			if n < 1 {
				n = 1
			}
			e.decaySamples = uint32(n + 0.5)
			e.decayProgress = 0
		}
		e.decayProgress++
		e.level = 1 - (1-e.sustain)*float32(e.decayProgress)/float32(e.decaySamples)
		if e.decayProgress >= e.decaySamples {
			e.level = e.sustain
			e.state = EnvSustain
		}
	case EnvSustain:
		e.level = e.sustain
	case EnvRelease:
		n := e.releaseSamples
		if n < 1 {
			n = 1
		}
		dec := e.releaseStart / float32(n)
		e.level = e.releaseStart - dec*float32(e.releaseProgress)
		if e.level < 0 {
			e.level = 0
		}
		e.releaseProgress++
		if e.releaseProgress >= n {
			e.level = 0
			e.state = EnvIdle
		}
	}
	return clamp(e.level, 0, 1)
}

// Render fills the buffer with envelope levels.
func (e *ADSR) Render(buf []float32, sampleRate float32) {
	for i := range buf {
		buf[i] = e.NextSample(sampleRate)
	}
}

// Apply multiplies the buffer by the envelope, sample by sample.
func (e *ADSR) Apply(buf []float32, sampleRate float32) {
	for i := range buf {
		buf[i] *= e.NextSample(sampleRate)
	}
}

func (e *ADSR) Active() bool {
	return e.state != EnvIdle
}

func (e *ADSR) Level() float32 {
	return e.level
}

func (e *ADSR) State() EnvelopeState {
	return e.state
}

// Reset returns the envelope to Idle without ramping.
func (e *ADSR) Reset() {
	e.state = EnvIdle
	e.level = 0
	e.attackStart = 0
	e.attackSamples = 0
	e.attackProgress = 0
	e.decaySamples = 0
	e.decayProgress = 0
	e.releaseStart = 0
	e.releaseProgress = 0
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
