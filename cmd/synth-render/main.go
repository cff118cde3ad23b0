package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dmeehan/polysynth-go"
	"github.com/dmeehan/polysynth-go/preset"
)

const defaultPattern = "60, 64, 67, 72, 67, 64"

func main() {
	var (
		outPath    = flag.String("out", "out.wav", "output WAV file")
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		voiceName  = flag.String("voice", "lead", "built-in voice name")
		presetPath = flag.String("preset", "", "path to a JSON voice preset (overrides -voice)")
		patternStr = flag.String("pattern", defaultPattern, "step pattern, e.g. \"60, 64:0.5, ., 67\"")
		tempo      = flag.Float64("tempo", 120, "tempo in BPM")
		floatFmt   = flag.Bool("float", false, "write 32-bit float samples instead of 16-bit PCM")
	)
	flag.Parse()

	factory, err := resolveVoice(*voiceName, *presetPath)
	if err != nil {
		log.Fatal(err)
	}
	pattern, err := polysynth.ParsePattern(*patternStr)
	if err != nil {
		log.Fatal(err)
	}

	samples := polysynth.RenderPattern(pattern, factory, *sampleRate, float32(*tempo))

	if *floatFmt {
		data := polysynth.EncodeWAVFloat32LE(samples, *sampleRate, 1)
		if err := os.WriteFile(*outPath, data, 0o644); err != nil {
			log.Fatal(err)
		}
	} else if err := writePCM16(*outPath, samples, *sampleRate); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d samples (%.2fs) to %s\n",
		len(samples), float64(len(samples))/float64(*sampleRate), *outPath)
}

func writePCM16(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func resolveVoice(name, presetPath string) (polysynth.VoiceFactory, error) {
	if presetPath != "" {
		patch, err := preset.LoadFile(presetPath)
		if err != nil {
			return nil, err
		}
		return patch.Factory()
	}
	return polysynth.Voice(name)
}
