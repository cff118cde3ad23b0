// Package voices is a library of ready-made voice graphs: a drum kit and a
// few melodic instruments assembled from the graph building blocks. Each
// function builds a fresh graph, so it can be used directly as a voice
// factory for the polyphonic pool.
package voices

import (
	"github.com/dmeehan/polysynth-go/internal/graph"
)

// Kick is a low sine thump with a fast decay.
func Kick() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewSine(),
			graph.NewADSR(0.001, 0.15, 0, 0.05),
		),
		graph.NewLowpass(200),
	)
}

// Snare layers a filtered triangle body under a bandpassed noise rattle.
func Snare() graph.Node {
	rattle := graph.NewThrough(
		graph.NewAmplify(
			graph.NewNoise(),
			graph.NewADSR(0.001, 0.12, 0, 0.08),
		),
		graph.NewBandpass(3000),
	)
	body := graph.NewThrough(
		graph.NewAmplify(
			graph.NewTriangle(),
			graph.NewADSR(0.001, 0.08, 0, 0.05),
		),
		graph.NewLowpass(400),
	)
	return graph.NewMix(body, rattle, 0.7)
}

// Hihat is a short burst of highpassed noise.
func Hihat() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewNoise(),
			graph.NewADSR(0.001, 0.05, 0, 0.03),
		),
		graph.NewHighpass(7000),
	)
}

// Openhat is a hihat with sustain and a band-limited sizzle.
func Openhat() graph.Node {
	return graph.NewThrough(
		graph.NewThrough(
			graph.NewAmplify(
				graph.NewNoise(),
				graph.NewADSR(0.001, 0.15, 0.2, 0.25),
			),
			graph.NewHighpass(7000),
		),
		graph.NewLowpass(12000),
	)
}

// Clap is mid-band noise boosted to cut through a mix.
func Clap() graph.Node {
	return graph.NewGain(
		graph.NewAmplify(
			graph.NewThrough(
				graph.NewNoise(),
				graph.NewBandpass(1500),
			),
			graph.NewADSR(0.005, 0.08, 0, 0.1),
		),
		1.5,
	)
}

// Tom is a pitched drum: a fixed sine whose frequency is swept downward
// by a fast envelope.
func Tom() graph.Node {
	pitchEnv := graph.NewADSR(0.001, 0.06, 0, 0)
	osc := graph.NewSine(graph.WithFrequency(150))
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewModulate(osc, graph.ParamFrequency, pitchEnv, 200),
			graph.NewADSR(0.001, 0.12, 0, 0.05),
		),
		graph.NewLowpass(400),
	)
}

// Crash is bright noise with a long decay.
func Crash() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewNoise(),
			graph.NewADSR(0.001, 0.8, 0.05, 0.5),
		),
		graph.NewHighpass(3000),
	)
}

// Ride is mid-high noise with a shorter body than a crash.
func Ride() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewNoise(),
			graph.NewADSR(0.001, 0.3, 0.1, 0.2),
		),
		graph.NewBandpass(5000),
	)
}

// Bass is a square wave kept dark with a low filter.
func Bass() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewSquare(),
			graph.NewADSR(0.01, 0.1, 0.7, 0.15),
		),
		graph.NewLowpass(500),
	)
}

// Lead is the classic subtractive voice: sawtooth, envelope, lowpass.
func Lead() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewSawtooth(),
			graph.NewADSR(0.01, 0.1, 0.6, 0.2),
		),
		graph.NewLowpass(2500),
	)
}

// WideLead runs a square lead through a chorus for stereo-less width.
func WideLead() graph.Node {
	return graph.NewThrough(
		graph.NewThrough(
			graph.NewAmplify(
				graph.NewSquare(),
				graph.NewADSR(0.01, 0.1, 0.6, 0.2),
			),
			graph.NewChorus(1.5, 4, 0.5),
		),
		graph.NewLowpass(3000),
	)
}

// Pad mixes two slightly detuned sawtooths with a slow attack.
func Pad() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewMix(
				graph.NewSawtooth(),
				graph.NewSawtooth(graph.WithDetune(8)),
				0.5,
			),
			graph.NewADSR(0.3, 0.1, 0.8, 0.5),
		),
		graph.NewLowpass(2500),
	)
}

// Pluck is a triangle with an instant attack and quick decay.
func Pluck() graph.Node {
	return graph.NewThrough(
		graph.NewAmplify(
			graph.NewTriangle(),
			graph.NewADSR(0.001, 0.15, 0, 0.1),
		),
		graph.NewLowpass(4000),
	)
}
