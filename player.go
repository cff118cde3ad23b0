// Package polysynth is a polyphonic block-based synthesis engine. Voices
// are signal graphs driven by a fixed voice pool; control events reach the
// audio side through a bounded non-blocking queue. The Player facade wires
// the engine to the audio device for live or sequenced playback, and the
// offline renderer produces raw sample buffers without a device.
package polysynth

import (
	"errors"
	"sync"

	intaudio "github.com/dmeehan/polysynth-go/internal/audio"
	intseq "github.com/dmeehan/polysynth-go/internal/sequencer"
	"github.com/dmeehan/polysynth-go/internal/synth"
	"github.com/dmeehan/polysynth-go/internal/voices"
)

// VoiceFactory builds one voice graph per pool slot.
type VoiceFactory = synth.VoiceFactory

// Step and Pattern are the sequencer's step-pattern types.
type (
	Step    = intseq.Step
	Pattern = intseq.Pattern
)

const (
	DefaultSampleRate = 48000
	DefaultMaxVoices  = synth.DefaultMaxVoices
	DefaultTempo      = 120
)

// PlayerOption configures a Player at construction.
type PlayerOption func(*playerConfig)

type playerConfig struct {
	sampleRate int
	maxVoices  int
	factory    VoiceFactory
	loop       bool
	masterGain float32
	sampleTap  func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{
		sampleRate: DefaultSampleRate,
		maxVoices:  DefaultMaxVoices,
		factory:    voices.Lead,
		masterGain: 1,
	}
}

// WithSampleRate sets the device sample rate in Hz.
func WithSampleRate(hz int) PlayerOption {
	return func(cfg *playerConfig) {
		if hz > 0 {
			cfg.sampleRate = hz
		}
	}
}

// WithMaxVoices sets the voice pool size.
func WithMaxVoices(n int) PlayerOption {
	return func(cfg *playerConfig) {
		if n > 0 {
			cfg.maxVoices = n
		}
	}
}

// WithVoiceFactory installs the factory used for every pool slot.
func WithVoiceFactory(f VoiceFactory) PlayerOption {
	return func(cfg *playerConfig) {
		if f != nil {
			cfg.factory = f
		}
	}
}

// WithLoopPlayback makes Play loop the pattern until Stop.
func WithLoopPlayback(enabled bool) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.loop = enabled
	}
}

// WithMasterGain sets the initial output gain, clamped to [0, 1].
func WithMasterGain(gain float32) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.masterGain = gain
	}
}

// WithSampleTap installs a callback invoked with each rendered mono block.
// The callback runs on the audio goroutine; keep work brief and
// non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player drives the engine from the audio device. Note methods may be
// called at any time, from any goroutine; they only push queue messages.
type Player struct {
	mu         sync.Mutex
	cfg        playerConfig
	queue      *synth.Queue
	engine     *synth.PolySynth
	source     *playbackSource
	device     *intaudio.Player
	sampleRate int
}

// NewPlayer builds a player. No audio device is opened until Play or Live.
func NewPlayer(opts ...PlayerOption) *Player {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	queue := synth.NewQueue(synth.DefaultQueueCapacity)
	engine := synth.NewPolySynth(float32(cfg.sampleRate), cfg.maxVoices, cfg.factory, queue)
	engine.SetMasterGain(cfg.masterGain)
	return &Player{
		cfg:        cfg,
		queue:      queue,
		engine:     engine,
		source:     &playbackSource{engine: engine, tap: cfg.sampleTap},
		sampleRate: cfg.sampleRate,
	}
}

// NoteOn requests a note start. It reports whether the event was queued;
// a saturated queue drops it.
func (p *Player) NoteOn(note, velocity uint8) bool {
	return p.queue.Push(synth.NoteOn(note, velocity))
}

// NoteOff requests a note release.
func (p *Player) NoteOff(note uint8) bool {
	return p.queue.Push(synth.NoteOff(note, 0))
}

// AllNotesOff releases every sounding note.
func (p *Player) AllNotesOff() bool {
	return p.queue.Push(synth.AllNotesOff())
}

// SetMasterVolume sets the output gain, clamped to [0, 1].
func (p *Player) SetMasterVolume(gain float32) {
	p.engine.SetMasterGain(gain)
}

// MasterVolume returns the current output gain.
func (p *Player) MasterVolume() float32 {
	return p.engine.MasterGain()
}

// ActiveVoices reports how many voices are sounding, release tails
// included.
func (p *Player) ActiveVoices() int {
	return p.engine.ActiveVoiceCount()
}

// Play starts sequenced playback of a pattern at the given tempo in BPM.
func (p *Player) Play(pattern Pattern, tempo float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	seq := intseq.New(p.queue, pattern, float32(p.sampleRate), tempo,
		intseq.Options{Loop: p.cfg.loop})
	p.source.setSequencer(seq)
	return p.startLocked()
}

// Live starts the audio device without a sequencer; notes come from
// NoteOn/NoteOff calls.
func (p *Player) Live() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source.setSequencer(nil)
	return p.startLocked()
}

func (p *Player) startLocked() error {
	if p.device == nil {
		dev, err := intaudio.NewPlayer(p.sampleRate, p.source)
		if err != nil {
			return err
		}
		p.device = dev
	}
	p.device.Play()
	return nil
}

// Pause suspends the device without losing engine state.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device != nil {
		p.device.Pause()
	}
}

// IsPlaying reports whether the device is running.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.device != nil && p.device.IsPlaying()
}

// Stop closes the device. The player can be started again afterwards.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return errors.New("polysynth: not playing")
	}
	err := p.device.Stop()
	p.device = nil
	return err
}

// playbackSource feeds the device: advance the optional sequencer by one
// block, then render the engine. It is the audio-goroutine half of the
// player, so it never takes the player's lock.
type playbackSource struct {
	engine *synth.PolySynth
	tap    func([]float32)

	mu  sync.Mutex
	seq *intseq.Sequencer
}

func (s *playbackSource) setSequencer(seq *intseq.Sequencer) {
	s.mu.Lock()
	s.seq = seq
	s.mu.Unlock()
}

func (s *playbackSource) sequencer() *intseq.Sequencer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

func (s *playbackSource) Process(dst []float32) {
	if seq := s.sequencer(); seq != nil {
		seq.Advance(len(dst))
	}
	s.engine.RenderBlock(dst)
	if s.tap != nil {
		s.tap(dst)
	}
}

// Finished reports end of sequenced playback once the pattern is done and
// every release tail has rung out. Live sessions never finish on their
// own.
func (s *playbackSource) Finished() bool {
	seq := s.sequencer()
	if seq == nil {
		return false
	}
	return seq.Finished() && s.engine.ActiveVoiceCount() == 0
}
