package polysynth

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePattern parses a compact step-pattern notation: comma-separated
// steps, each a MIDI note number with an optional ":gate" fraction, or
// "." for a rest.
//
//	"60, 64, 67:0.25, ."
func ParsePattern(s string) (Pattern, error) {
	var steps []Step
	for i, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || tok == "." || tok == "-" {
			steps = append(steps, Step{})
			continue
		}
		noteStr, gateStr, hasGate := strings.Cut(tok, ":")
		note, err := strconv.Atoi(strings.TrimSpace(noteStr))
		if err != nil || note < 0 || note > 127 {
			return Pattern{}, fmt.Errorf("step %d: bad note %q", i, tok)
		}
		gate := float32(1)
		if hasGate {
			g, err := strconv.ParseFloat(strings.TrimSpace(gateStr), 32)
			if err != nil || g <= 0 || g > 1 {
				return Pattern{}, fmt.Errorf("step %d: bad gate %q", i, tok)
			}
			gate = float32(g)
		}
		steps = append(steps, Step{Note: uint8(note), Velocity: 100, Gate: gate})
	}
	if len(steps) == 0 {
		return Pattern{}, fmt.Errorf("empty pattern")
	}
	return Pattern{Steps: steps}, nil
}
