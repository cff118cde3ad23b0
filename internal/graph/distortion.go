package graph

import "github.com/dmeehan/polysynth-go/internal/dsp"

// DistortionMode selects the waveshaping curve.
type DistortionMode int

const (
	// DistortionSoft is tanh saturation, warm and tube-like.
	DistortionSoft DistortionMode = iota
	// DistortionHard clamps at the threshold, harsh and buzzy.
	DistortionHard
	// DistortionFoldback reflects across the threshold, metallic.
	DistortionFoldback
)

// Distortion is a waveshaping effect node.
type Distortion struct {
	Base
	mode      DistortionMode
	drive     float32
	mix       float32
	threshold float32
	dry       []float32
}

// DistortionOption configures a distortion at construction.
type DistortionOption func(*Distortion)

// WithThreshold sets the clip/fold threshold for the hard and foldback
// modes. Values below 0.01 are raised to 0.01.
func WithThreshold(threshold float32) DistortionOption {
	return func(d *Distortion) {
		if threshold < 0.01 {
			threshold = 0.01
		}
		d.threshold = threshold
	}
}

func newDistortion(mode DistortionMode, drive, mix float32, opts ...DistortionOption) *Distortion {
	if drive < 1 {
		drive = 1
	}
	d := &Distortion{
		mode:      mode,
		drive:     drive,
		mix:       clamp(mix, 0, 1),
		threshold: 1,
		dry:       make([]float32, MaxBlockSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func NewSoftDistortion(drive, mix float32, opts ...DistortionOption) *Distortion {
	return newDistortion(DistortionSoft, drive, mix, opts...)
}

func NewHardDistortion(drive, mix float32, opts ...DistortionOption) *Distortion {
	return newDistortion(DistortionHard, drive, mix, opts...)
}

func NewFoldbackDistortion(drive, mix float32, opts ...DistortionOption) *Distortion {
	return newDistortion(DistortionFoldback, drive, mix, opts...)
}

func (d *Distortion) Render(out []float32, ctx Context) {
	dry := d.dry[:len(out)]
	copy(dry, out)
	switch d.mode {
	case DistortionHard:
		dsp.HardClipBuffer(out, d.drive, d.threshold)
	case DistortionFoldback:
		dsp.FoldbackBuffer(out, d.drive, d.threshold)
	default:
		dsp.SoftClipBuffer(out, d.drive)
	}
	dsp.ApplyDryWet(dry, out, d.mix)
}

// Active is false: waveshaping is memoryless, there is no tail to wait
// for once the input stops.
func (d *Distortion) Active() bool { return false }

func (d *Distortion) ParamValue(p Param) (float32, bool) {
	switch p {
	case ParamDrive:
		return d.drive, true
	case ParamMix:
		return d.mix, true
	}
	return 0, false
}

func (d *Distortion) ApplyModulation(p Param, value float32) {
	switch p {
	case ParamDrive:
		if value < 1 {
			value = 1
		}
		d.drive = value
	case ParamMix:
		d.mix = clamp(value, 0, 1)
	}
}
