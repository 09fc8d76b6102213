package klangfarb

// Instrument is a sample-producing synthesis strategy.
type Instrument interface {
	// Advance returns the next sample, or false once the note has ended.
	Advance() (Sample, bool)

	// Describe reports the parameters the instrument was built from.
	Describe() Params
}

var (
	_ Instrument = (*Additive)(nil)
	_ Instrument = (*Bank)(nil)
)

// Additive sums a set of partials. It is complete once every partial is
// spent.
type Additive struct {
	partials []*Partial
	complete bool
	params   Params
}

// NewAdditive builds one sine partial per frequency multiplier, each at equal
// amplitude and lasting the full base duration.
func NewAdditive(multipliers []float64, frequency Hz, duration Millisecond, sampleRate SamplesPerSecond) *Additive {
	specs := make([]PartialSpec, len(multipliers))
	for i, m := range multipliers {
		specs[i] = PartialSpec{
			Amplitude:         1 / float64(len(multipliers)),
			RelativeDuration:  1,
			RelativeFrequency: m,
		}
	}

	a := NewAdditiveFromSpecs(specs, frequency, duration, sampleRate)
	a.params.Partials = append([]float64(nil), multipliers...)
	return a
}

func NewAdditiveFromSpecs(specs []PartialSpec, frequency Hz, duration Millisecond, sampleRate SamplesPerSecond) *Additive {
	a := &Additive{
		partials: make([]*Partial, len(specs)),
		params: Params{
			Model:      ModelAdditive,
			SampleRate: sampleRate,
			Frequency:  frequency,
			Waveform:   Sine,
			Duration:   duration,
			Gain:       1,
		},
	}
	for i, s := range specs {
		a.partials[i] = NewPartial(s, sampleRate, duration, frequency)
	}
	return a
}

func (a *Additive) Partials() []*Partial {
	return a.partials
}

func (a *Additive) Advance() (Sample, bool) {
	if a.complete {
		return 0, false
	}

	var sum Sample
	live := false
	for _, p := range a.partials {
		if s, ok := p.Advance(); ok {
			sum += s
			live = true
		}
	}
	if !live {
		a.complete = true
		return 0, false
	}
	return sum, true
}

// Complete reports whether every partial has finished. Once true it stays
// true.
func (a *Additive) Complete() bool {
	return a.complete
}

// SetFrequency retunes every live partial against a new base frequency.
func (a *Additive) SetFrequency(f Hz) {
	a.params.Frequency = f
	for _, p := range a.partials {
		p.osc.SetFrequency(f*p.RelativeFrequency + p.Detune)
	}
}

// SetSampleRate updates the partial oscillators. Ramps already built keep
// their length.
func (a *Additive) SetSampleRate(sr SamplesPerSecond) {
	a.params.SampleRate = sr
	for _, p := range a.partials {
		p.osc.SetSampleRate(sr)
	}
}

// SetWaveform changes the waveform of every partial.
func (a *Additive) SetWaveform(w Waveform) {
	a.params.Waveform = w
	for _, p := range a.partials {
		p.osc.Waveform = w
	}
}

func (a *Additive) SetBend(enabled bool, bp Breakpoint) {
	a.params.Bend = enabled
	a.params.BendPoint = bp
	for _, p := range a.partials {
		p.osc.SetBend(enabled, bp)
	}
}

func (a *Additive) SetRand(r Rand) {
	for _, p := range a.partials {
		p.osc.SetRand(r)
	}
}

// Len is the number of samples until the longest partial is spent.
func (a *Additive) Len() int {
	var n int
	for _, p := range a.partials {
		n = max(n, p.Len())
	}
	return n
}

func (a *Additive) Describe() Params {
	return a.params.clone()
}

// Bank averages a set of oscillators and shapes the mix with one envelope.
type Bank struct {
	// Continuous bypasses the envelope; the bank then never ends.
	Continuous bool

	oscs     []*Osc
	ratios   []float64
	bases    []Hz
	envelope *Envelope
	fm       *FM
	params   Params
}

// NewBank builds one oscillator per ratio of frequency, all sharing env.
func NewBank(frequency Hz, ratios []float64, env *Envelope, sampleRate SamplesPerSecond) *Bank {
	b := &Bank{
		oscs:     make([]*Osc, len(ratios)),
		ratios:   append([]float64(nil), ratios...),
		bases:    make([]Hz, len(ratios)),
		envelope: env,
		params: Params{
			Model:      ModelBank,
			SampleRate: sampleRate,
			Waveform:   Sine,
			Ratios:     append([]float64(nil), ratios...),
		},
	}
	for i := range ratios {
		b.oscs[i] = NewOsc(0, sampleRate)
	}
	b.SetFrequency(frequency)
	return b
}

func (b *Bank) Oscs() []*Osc {
	return b.oscs
}

func (b *Bank) Envelope() *Envelope {
	return b.envelope
}

// Retrigger replaces the envelope. Oscillator phases carry on.
func (b *Bank) Retrigger(env *Envelope) {
	b.envelope = env
}

func (b *Bank) SetFrequency(f Hz) {
	b.params.Frequency = f
	for i, r := range b.ratios {
		b.bases[i] = f * r
		b.oscs[i].SetFrequency(b.bases[i])
	}
}

func (b *Bank) SetWaveform(w Waveform) {
	b.params.Waveform = w
	for _, o := range b.oscs {
		o.Waveform = w
	}
}

func (b *Bank) SetBend(enabled bool, bp Breakpoint) {
	b.params.Bend = enabled
	b.params.BendPoint = bp
	for _, o := range b.oscs {
		o.SetBend(enabled, bp)
	}
}

func (b *Bank) SetRand(r Rand) {
	for _, o := range b.oscs {
		o.SetRand(r)
	}
}

func (b *Bank) SetSampleRate(sr SamplesPerSecond) {
	b.params.SampleRate = sr
	for _, o := range b.oscs {
		o.SetSampleRate(sr)
	}
	if b.fm != nil {
		b.fm.SetSampleRate(sr)
	}
}

// SetFM attaches a modulator shared by every oscillator in the bank. A nil
// fm removes modulation.
func (b *Bank) SetFM(fm *FM) {
	b.fm = fm
}

func (b *Bank) Advance() (Sample, bool) {
	if len(b.oscs) == 0 {
		return 0, false
	}

	off := b.fm.Offset()
	for i, o := range b.oscs {
		o.SetFrequency(b.bases[i] + off)
	}

	var sum Sample
	for _, o := range b.oscs {
		sum += o.Advance()
	}
	mean := sum / Sample(len(b.oscs))

	if b.Continuous {
		return mean, true
	}
	if b.envelope == nil {
		return 0, false
	}
	amp, ok := b.envelope.Advance()
	if !ok {
		return 0, false
	}
	return mean * amp, true
}

func (b *Bank) Describe() Params {
	p := b.params.clone()
	p.Continuous = b.Continuous
	if b.fm != nil {
		p.FM = b.fm.Enabled
		p.FMFrequency = b.fm.Frequency()
		p.FMDepth = b.fm.Depth
	}
	return p
}
