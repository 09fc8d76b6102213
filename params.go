package klangfarb

import (
	"fmt"
	"slices"
)

// Model selects the synthesis strategy a Synth builds.
type Model int

const (
	// ModelBank averages an oscillator bank under one ADSR envelope.
	ModelBank Model = iota
	// ModelAdditive sums decaying partials.
	ModelAdditive
)

func (m Model) String() string {
	switch m {
	case ModelBank:
		return "bank"
	case ModelAdditive:
		return "additive"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

func ParseModel(s string) (Model, error) {
	switch s {
	case "bank":
		return ModelBank, nil
	case "additive":
		return ModelAdditive, nil
	default:
		return 0, fmt.Errorf("unknown model: %q", s)
	}
}

// Params is the full set of control parameters for one Synth.
type Params struct {
	SampleRate SamplesPerSecond

	Frequency Hz
	Waveform  Waveform

	Attack  Millisecond
	Decay   Millisecond
	Sustain Amplitude
	Release Millisecond

	FM          bool
	FMFrequency Hz
	FMDepth     Hz

	Bend      bool
	BendPoint Breakpoint

	// Continuous plays the bank without its envelope, forever.
	Continuous bool

	Model Model

	// Ratios are the bank oscillator frequency multipliers.
	Ratios []float64

	// Partials are additive frequency multipliers, used when Preset is empty.
	Partials []float64
	Preset   string
	Duration Millisecond
	Gain     Amplitude

	// Cutoff is stored for hosts that expose it. No filter reads it.
	Cutoff Hz
}

func DefaultParams() Params {
	return Params{
		SampleRate:  44100,
		Frequency:   440,
		Waveform:    Sine,
		Attack:      10,
		Decay:       200,
		Sustain:     0.7,
		Release:     1000,
		FMFrequency: 3,
		FMDepth:     10,
		BendPoint:   Breakpoint{X: 0.5, Y: 0.5},
		Model:       ModelBank,
		Ratios:      []float64{1},
		Partials:    []float64{1, 2, 4},
		Duration:    2000,
		Gain:        0.1,
		Cutoff:      20000,
	}
}

func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", p.SampleRate)
	}
	if p.Waveform < Sine || p.Waveform > BrownNoise {
		return fmt.Errorf("invalid waveform %d", int(p.Waveform))
	}
	if p.Sustain < 0 || p.Sustain > 1 {
		return fmt.Errorf("sustain must be within [0, 1], got %v", p.Sustain)
	}
	if p.BendPoint.X <= 0 || p.BendPoint.X >= 1 {
		return fmt.Errorf("bend breakpoint x must be within (0, 1), got %v", p.BendPoint.X)
	}

	switch p.Model {
	case ModelBank:
		if len(p.Ratios) == 0 {
			return fmt.Errorf("bank model needs at least one oscillator ratio")
		}
	case ModelAdditive:
		switch p.Preset {
		case "":
			if len(p.Partials) == 0 {
				return fmt.Errorf("additive model needs partials or a preset")
			}
		case PresetBell:
		default:
			return fmt.Errorf("unknown preset: %q", p.Preset)
		}
	default:
		return fmt.Errorf("invalid model %d", int(p.Model))
	}
	return nil
}

func (p Params) clone() Params {
	p.Ratios = slices.Clone(p.Ratios)
	p.Partials = slices.Clone(p.Partials)
	return p
}
