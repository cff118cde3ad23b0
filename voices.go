package polysynth

import (
	"fmt"
	"sort"

	"github.com/dmeehan/polysynth-go/internal/voices"
)

var voiceLibrary = map[string]VoiceFactory{
	"kick":     voices.Kick,
	"snare":    voices.Snare,
	"hihat":    voices.Hihat,
	"openhat":  voices.Openhat,
	"clap":     voices.Clap,
	"tom":      voices.Tom,
	"crash":    voices.Crash,
	"ride":     voices.Ride,
	"bass":     voices.Bass,
	"lead":     voices.Lead,
	"widelead": voices.WideLead,
	"pad":      voices.Pad,
	"pluck":    voices.Pluck,
}

// Voice returns the named factory from the built-in voice library.
func Voice(name string) (VoiceFactory, error) {
	f, ok := voiceLibrary[name]
	if !ok {
		return nil, fmt.Errorf("unknown voice %q", name)
	}
	return f, nil
}

// VoiceNames lists the built-in voice library in stable order.
func VoiceNames() []string {
	names := make([]string, 0, len(voiceLibrary))
	for name := range voiceLibrary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
