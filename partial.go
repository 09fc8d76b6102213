package klangfarb

// PartialAttackSamples is the length of the fixed attack ramp at the start of
// every partial.
const PartialAttackSamples = 5

// PartialSpec describes one overtone relative to an instrument's base
// frequency and duration.
type PartialSpec struct {
	Amplitude         Amplitude
	RelativeDuration  float64
	RelativeFrequency float64
	Detune            Hz
}

// Partial is one voice of an additive instrument: an oscillator shaped by a
// short attack ramp followed by a decay to silence.
type Partial struct {
	PartialSpec

	osc    *Osc
	attack *Line
	decay  *Line
}

func NewPartial(spec PartialSpec, sampleRate SamplesPerSecond, baseDuration Millisecond, baseFrequency Hz) *Partial {
	freq := baseFrequency*spec.RelativeFrequency + spec.Detune
	decay := Millisecond(float64(baseDuration) * spec.RelativeDuration)

	return &Partial{
		PartialSpec: spec,
		osc:         NewOsc(freq, sampleRate),
		attack:      NewLineSamples(0, spec.Amplitude, PartialAttackSamples),
		decay:       NewLine(spec.Amplitude, 0, decay, sampleRate),
	}
}

func (p *Partial) Osc() *Osc {
	return p.osc
}

// Advance returns the shaped oscillator output, or false once both ramps are
// spent. The oscillator is not advanced after that.
func (p *Partial) Advance() (Sample, bool) {
	amp, ok := p.attack.Advance()
	if !ok {
		amp, ok = p.decay.Advance()
		if !ok {
			return 0, false
		}
	}
	return p.osc.Advance() * amp, true
}

func (p *Partial) Done() bool {
	return p.attack.Done() && p.decay.Done()
}

// Len is the number of samples the partial emits before it is spent.
func (p *Partial) Len() int {
	return p.attack.Len() + p.decay.Len()
}
