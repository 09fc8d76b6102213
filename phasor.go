package klangfarb

import "math"

// Phasor accumulates phase for a periodic waveform. Only the first cycle is
// ever computed, which keeps pitch from drifting as time grows.
type Phasor struct {
	Phase      Phase
	Frequency  Hz
	SampleRate SamplesPerSecond
}

func NewPhasor(frequency Hz, sampleRate SamplesPerSecond) *Phasor {
	return &Phasor{Frequency: frequency, SampleRate: sampleRate}
}

// Advance moves the phase forward by one sample and returns it. A zero
// sample rate leaves the phase where it is.
func (p *Phasor) Advance() Phase {
	if p.SampleRate == 0 {
		return p.Phase
	}

	p.Phase = math.Mod(p.Phase+p.Frequency/p.SampleRate, 1)
	if p.Phase < 0 {
		p.Phase++
		if p.Phase >= 1 {
			p.Phase = 0
		}
	}
	return p.Phase
}
