package klangfarb

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
	WhiteNoise
	BrownNoise
)

var waveformNames = []string{
	Sine:       "sine",
	Square:     "square",
	Triangle:   "triangle",
	Sawtooth:   "saw",
	WhiteNoise: "white",
	BrownNoise: "brown",
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

func ParseWaveform(s string) (Waveform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "sawtooth":
		return Sawtooth, nil
	case "whitenoise", "noise":
		return WhiteNoise, nil
	case "brownnoise":
		return BrownNoise, nil
	}
	for i, n := range waveformNames {
		if n == s {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform: %q", s)
}

// Rand is the random source used by the noise waveforms. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Osc maps the phase of its phasor onto a waveform.
type Osc struct {
	Waveform Waveform

	phasor *Phasor
	last   Sample
	rand   Rand

	bend      bool
	bendPoint Breakpoint
}

func NewOsc(frequency Hz, sampleRate SamplesPerSecond) *Osc {
	return &Osc{
		phasor: NewPhasor(frequency, sampleRate),
		rand:   rand.New(rand.NewSource(1)),
	}
}

func (o *Osc) Frequency() Hz {
	return o.phasor.Frequency
}

// SetFrequency takes effect on the next Advance.
func (o *Osc) SetFrequency(f Hz) {
	o.phasor.Frequency = f
}

func (o *Osc) SetSampleRate(sr SamplesPerSecond) {
	o.phasor.SampleRate = sr
}

func (o *Osc) SetRand(r Rand) {
	o.rand = r
}

// SetBend enables or disables the phase warp applied before waveform lookup.
func (o *Osc) SetBend(enabled bool, bp Breakpoint) {
	o.bend = enabled
	o.bendPoint = bp
}

func (o *Osc) Phase() Phase {
	return o.phasor.Phase
}

func (o *Osc) Advance() Sample {
	phase := o.phasor.Advance()
	if o.bend {
		phase = Bend(phase, o.bendPoint)
	}

	switch o.Waveform {
	case WhiteNoise:
		o.last = math.Sin(o.rand.Float64())
	case BrownNoise:
		o.last = clamp(o.last+o.rand.Float64()*0.2-0.1, -1, 1)
	default:
		o.last = GenerateSample(o.Waveform, phase)
	}
	return o.last
}

// GenerateSample evaluates a periodic waveform at phase. Noise waveforms have
// no periodic shape and yield 0.
func GenerateSample(w Waveform, phase Phase) Sample {
	switch w {
	case Sine:
		return math.Sin(2 * math.Pi * phase)
	case Square:
		if phase < 0.5 {
			return -1
		}
		return 1
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 4*(1-phase) - 1
	case Sawtooth:
		return 2*phase - 1
	default:
		return 0
	}
}
