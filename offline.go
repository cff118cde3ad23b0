package polysynth

import (
	"encoding/binary"
	"math"

	intseq "github.com/dmeehan/polysynth-go/internal/sequencer"
	"github.com/dmeehan/polysynth-go/internal/synth"
)

const offlineBlockSize = 512

// maxOfflineSeconds caps offline rendering so a pattern that never goes
// quiet cannot grow the buffer forever.
const maxOfflineSeconds = 600

// RenderPattern renders a pattern offline and returns the mono samples.
// Rendering continues past the last step until every release tail has
// rung out.
func RenderPattern(pattern Pattern, factory VoiceFactory, sampleRate int, tempo float32) []float32 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	queue := synth.NewQueue(synth.DefaultQueueCapacity)
	engine := synth.NewPolySynth(float32(sampleRate), DefaultMaxVoices, factory, queue)
	seq := intseq.New(queue, pattern, float32(sampleRate), tempo, intseq.Options{})

	var out []float32
	block := make([]float32, offlineBlockSize)
	maxFrames := sampleRate * maxOfflineSeconds
	for len(out) < maxFrames {
		seq.Advance(len(block))
		engine.RenderBlock(block)
		out = append(out, block...)
		if seq.Finished() && engine.ActiveVoiceCount() == 0 {
			break
		}
	}
	return out
}

// RenderSeconds renders a fixed duration of a single held note, useful
// for auditioning a voice.
func RenderSeconds(factory VoiceFactory, note uint8, sampleRate int, seconds float64) []float32 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	queue := synth.NewQueue(synth.DefaultQueueCapacity)
	engine := synth.NewPolySynth(float32(sampleRate), DefaultMaxVoices, factory, queue)
	queue.Push(synth.NoteOn(note, 100))

	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames)
	for off := 0; off < frames; off += offlineBlockSize {
		end := off + offlineBlockSize
		if end > frames {
			end = frames
		}
		engine.RenderBlock(out[off:end])
	}
	return out
}

// EncodeWAVFloat32LE wraps samples in a minimal IEEE-float WAV container.
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
