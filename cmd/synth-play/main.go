package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dmeehan/polysynth-go"
	"github.com/dmeehan/polysynth-go/preset"
)

const defaultPattern = "60, 64, 67, 72, 67, 64"

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		voiceName  = flag.String("voice", "lead", "built-in voice name (see -list)")
		presetPath = flag.String("preset", "", "path to a JSON voice preset (overrides -voice)")
		patternStr = flag.String("pattern", defaultPattern, "step pattern, e.g. \"60, 64:0.5, ., 67\"")
		tempo      = flag.Float64("tempo", 120, "tempo in BPM")
		loop       = flag.Bool("loop", false, "loop the pattern")
		duration   = flag.Float64("duration", 10, "when -loop, stop after this many seconds")
		volume     = flag.Float64("volume", 1.0, "master volume 0..1")
		list       = flag.Bool("list", false, "list built-in voices and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range polysynth.VoiceNames() {
			fmt.Println(name)
		}
		return
	}

	factory, err := resolveVoice(*voiceName, *presetPath)
	if err != nil {
		log.Fatal(err)
	}
	pattern, err := polysynth.ParsePattern(*patternStr)
	if err != nil {
		log.Fatal(err)
	}

	pl := polysynth.NewPlayer(
		polysynth.WithSampleRate(*sampleRate),
		polysynth.WithVoiceFactory(factory),
		polysynth.WithLoopPlayback(*loop),
		polysynth.WithMasterGain(float32(*volume)),
	)
	if err := pl.Play(pattern, float32(*tempo)); err != nil {
		log.Fatal(err)
	}

	if *loop {
		time.Sleep(time.Duration(*duration * float64(time.Second)))
	} else {
		for pl.IsPlaying() {
			time.Sleep(50 * time.Millisecond)
		}
	}
	if err := pl.Stop(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("playback completed")
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
