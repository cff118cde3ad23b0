// Package preset loads voice patches from JSON and compiles them into
// voice factories for the synth. A patch describes an oscillator stack, an
// amplitude envelope, an optional filter with an optional LFO route, and a
// chain of effects; the compiler assembles the matching signal graph.
package preset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmeehan/polysynth-go/internal/dsp"
	"github.com/dmeehan/polysynth-go/internal/graph"
	"github.com/dmeehan/polysynth-go/internal/synth"
)

// Patch is the serialized form of a voice.
type Patch struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Oscillators []OscillatorSpec `json:"oscillators"`
	Envelope    EnvelopeSpec     `json:"envelope"`
	Filter      *FilterSpec      `json:"filter,omitempty"`
	LFO         *LFOSpec         `json:"lfo,omitempty"`
	Effects     []EffectSpec     `json:"effects,omitempty"`
}

// OscillatorSpec describes one layer of the oscillator stack. Layers are
// blended equally; Gain rebalances a layer against the others.
type OscillatorSpec struct {
	Waveform    string  `json:"waveform"`
	DetuneCents float32 `json:"detune_cents,omitempty"`
	FrequencyHz float32 `json:"frequency_hz,omitempty"` // 0 tracks the note
	Duty        float32 `json:"duty,omitempty"`
	Gain        float32 `json:"gain,omitempty"` // 0 means 1
}

// EnvelopeSpec is the amplitude envelope, times in milliseconds.
type EnvelopeSpec struct {
	AttackMs  float32 `json:"attack_ms"`
	DecayMs   float32 `json:"decay_ms"`
	Sustain   float32 `json:"sustain"`
	ReleaseMs float32 `json:"release_ms"`
}

// FilterSpec describes the voice filter.
type FilterSpec struct {
	Type      string  `json:"type"`
	CutoffHz  float32 `json:"cutoff_hz"`
	Resonance float32 `json:"resonance,omitempty"`
}

// LFOSpec routes a low-frequency oscillator onto a filter parameter.
type LFOSpec struct {
	Waveform string  `json:"waveform"`
	RateHz   float32 `json:"rate_hz"`
	Target   string  `json:"target"` // "cutoff" or "resonance"
	Depth    float32 `json:"depth"`
}

// EffectSpec is one entry of the serial effect chain.
type EffectSpec struct {
	Type string `json:"type"`

	// Reverb.
	RoomSize float32 `json:"room_size,omitempty"`
	Damping  float32 `json:"damping,omitempty"`

	// Delay.
	TimeMs   float32 `json:"time_ms,omitempty"`
	Feedback float32 `json:"feedback,omitempty"`

	// Chorus.
	RateHz  float32 `json:"rate_hz,omitempty"`
	DepthMs float32 `json:"depth_ms,omitempty"`

	// Distortion.
	Mode      string  `json:"mode,omitempty"` // "soft", "hard", "foldback"
	Drive     float32 `json:"drive,omitempty"`
	Threshold float32 `json:"threshold,omitempty"`

	Mix float32 `json:"mix"`
}

// Load parses a patch from JSON.
func Load(r io.Reader) (*Patch, error) {
	var p Patch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("preset: decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile parses a patch from a JSON file.
func LoadFile(path string) (*Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save writes the patch as indented JSON.
func (p *Patch) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}
	return nil
}

// Validate checks the patch for problems the compiler cannot express.
func (p *Patch) Validate() error {
	if len(p.Oscillators) == 0 {
		return fmt.Errorf("preset %q: needs at least one oscillator", p.Name)
	}
	for i, o := range p.Oscillators {
		if _, err := waveformByName(o.Waveform); err != nil {
			return fmt.Errorf("preset %q: oscillator %d: %w", p.Name, i, err)
		}
	}
	if p.Filter != nil {
		if _, err := filterByName(p.Filter.Type); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	if p.LFO != nil {
		if p.Filter == nil {
			return fmt.Errorf("preset %q: lfo requires a filter", p.Name)
		}
		if _, err := waveformByName(p.LFO.Waveform); err != nil {
			return fmt.Errorf("preset %q: lfo: %w", p.Name, err)
		}
		if _, err := lfoTargetByName(p.LFO.Target); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	for i, fx := range p.Effects {
		if err := validateEffect(fx); err != nil {
			return fmt.Errorf("preset %q: effect %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// Factory compiles the patch into a voice factory. Each call of the
// returned factory builds an independent graph.
func (p *Patch) Factory() (synth.VoiceFactory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return func() graph.Node { return p.build() }, nil
}

func (p *Patch) build() graph.Node {
	node := p.buildOscStack()

	env := graph.NewADSR(
		p.Envelope.AttackMs/1000,
		p.Envelope.DecayMs/1000,
		p.Envelope.Sustain,
		p.Envelope.ReleaseMs/1000,
	)
	node = graph.NewAmplify(node, env)

	if p.Filter != nil {
		node = graph.NewThrough(node, p.buildFilter())
	}
	for _, fx := range p.Effects {
		node = graph.NewThrough(node, buildEffect(fx))
	}
	return node
}

func (p *Patch) buildOscStack() graph.Node {
	node := buildOsc(p.Oscillators[0])
	for _, spec := range p.Oscillators[1:] {
		node = graph.NewMix(node, buildOsc(spec), 0.5)
	}
	return node
}

func buildOsc(spec OscillatorSpec) graph.Node {
	wave, _ := waveformByName(spec.Waveform)
	var opts []graph.OscOption
	if spec.FrequencyHz > 0 {
		opts = append(opts, graph.WithFrequency(spec.FrequencyHz))
	}
	if spec.DetuneCents != 0 {
		opts = append(opts, graph.WithDetune(spec.DetuneCents))
	}
	if spec.Duty > 0 {
		opts = append(opts, graph.WithDuty(spec.Duty))
	}
	var node graph.Node = newOscNode(wave, opts)
	if spec.Gain > 0 && spec.Gain != 1 {
		node = graph.NewGain(node, spec.Gain)
	}
	return node
}

func newOscNode(wave dsp.Waveform, opts []graph.OscOption) *graph.Osc {
	switch wave {
	case dsp.WaveSawtooth:
		return graph.NewSawtooth(opts...)
	case dsp.WaveSquare:
		return graph.NewSquare(opts...)
	case dsp.WaveTriangle:
		return graph.NewTriangle(opts...)
	case dsp.WaveNoise:
		return graph.NewNoise(opts...)
	default:
		return graph.NewSine(opts...)
	}
}

func (p *Patch) buildFilter() graph.Node {
	mode, _ := filterByName(p.Filter.Type)
	var opts []graph.FilterOption
	if p.Filter.Resonance > 0 {
		opts = append(opts, graph.WithResonance(p.Filter.Resonance))
	}
	var filter *graph.Filter
	switch mode {
	case dsp.FilterHighpass:
		filter = graph.NewHighpass(p.Filter.CutoffHz, opts...)
	case dsp.FilterBandpass:
		filter = graph.NewBandpass(p.Filter.CutoffHz, opts...)
	case dsp.FilterNotch:
		filter = graph.NewNotch(p.Filter.CutoffHz, opts...)
	default:
		filter = graph.NewLowpass(p.Filter.CutoffHz, opts...)
	}
	if p.LFO == nil {
		return filter
	}
	wave, _ := waveformByName(p.LFO.Waveform)
	target, _ := lfoTargetByName(p.LFO.Target)
	return graph.NewModulate(filter, target, graph.NewLFO(wave, p.LFO.RateHz), p.LFO.Depth)
}

func buildEffect(fx EffectSpec) graph.Node {
	switch fx.Type {
	case "reverb":
		return graph.NewReverb(fx.RoomSize, fx.Damping, fx.Mix)
	case "delay":
		return graph.NewDelay(fx.TimeMs, fx.Feedback, fx.Mix)
	case "chorus":
		return graph.NewChorus(fx.RateHz, fx.DepthMs, fx.Mix)
	default: // "distortion", guaranteed by Validate
		var opts []graph.DistortionOption
		if fx.Threshold > 0 {
			opts = append(opts, graph.WithThreshold(fx.Threshold))
		}
		switch fx.Mode {
		case "hard":
			return graph.NewHardDistortion(fx.Drive, fx.Mix, opts...)
		case "foldback":
			return graph.NewFoldbackDistortion(fx.Drive, fx.Mix, opts...)
		default:
			return graph.NewSoftDistortion(fx.Drive, fx.Mix, opts...)
		}
	}
}

func validateEffect(fx EffectSpec) error {
	switch fx.Type {
	case "reverb", "delay", "chorus":
		return nil
	case "distortion":
		switch fx.Mode {
		case "", "soft", "hard", "foldback":
			return nil
		}
		return fmt.Errorf("unknown distortion mode %q", fx.Mode)
	}
	return fmt.Errorf("unknown effect type %q", fx.Type)
}

func waveformByName(name string) (dsp.Waveform, error) {
	switch name {
	case "sine":
		return dsp.WaveSine, nil
	case "sawtooth", "saw":
		return dsp.WaveSawtooth, nil
	case "square":
		return dsp.WaveSquare, nil
	case "triangle":
		return dsp.WaveTriangle, nil
	case "noise":
		return dsp.WaveNoise, nil
	}
	return 0, fmt.Errorf("unknown waveform %q", name)
}

func filterByName(name string) (dsp.FilterMode, error) {
	switch name {
	case "lowpass":
		return dsp.FilterLowpass, nil
	case "highpass":
		return dsp.FilterHighpass, nil
	case "bandpass":
		return dsp.FilterBandpass, nil
	case "notch":
		return dsp.FilterNotch, nil
	}
	return 0, fmt.Errorf("unknown filter type %q", name)
}

func lfoTargetByName(name string) (graph.Param, error) {
	switch name {
	case "cutoff":
		return graph.ParamCutoff, nil
	case "resonance":
		return graph.ParamResonance, nil
	}
	return 0, fmt.Errorf("unknown lfo target %q", name)
}
