package klangfarb

// bellPartials is the classic Risset bell: eleven inharmonic partials whose
// higher members die away first.
var bellPartials = []PartialSpec{
	{Amplitude: 1, RelativeDuration: 1, RelativeFrequency: 0.56, Detune: 0},
	{Amplitude: 0.67, RelativeDuration: 0.9, RelativeFrequency: 0.56, Detune: 1},
	{Amplitude: 1, RelativeDuration: 0.65, RelativeFrequency: 0.92, Detune: 0},
	{Amplitude: 1.8, RelativeDuration: 0.55, RelativeFrequency: 0.92, Detune: 1.7},
	{Amplitude: 2.67, RelativeDuration: 0.325, RelativeFrequency: 1.19, Detune: 0},
	{Amplitude: 1.67, RelativeDuration: 0.35, RelativeFrequency: 1.7, Detune: 0},
	{Amplitude: 1.46, RelativeDuration: 0.25, RelativeFrequency: 2, Detune: 0},
	{Amplitude: 1.33, RelativeDuration: 0.2, RelativeFrequency: 2.74, Detune: 0},
	{Amplitude: 1.33, RelativeDuration: 0.15, RelativeFrequency: 3, Detune: 0},
	{Amplitude: 1, RelativeDuration: 0.1, RelativeFrequency: 3.76, Detune: 0},
	{Amplitude: 1.33, RelativeDuration: 0.075, RelativeFrequency: 4.07, Detune: 0},
}

const PresetBell = "bell"

// BellPartials returns a copy of the bell table.
func BellPartials() []PartialSpec {
	return append([]PartialSpec(nil), bellPartials...)
}

// NewBell builds the bell preset at frequency. The table amplitudes sum well
// past 1, so each one is scaled by gain.
func NewBell(frequency Hz, duration Millisecond, gain Amplitude, sampleRate SamplesPerSecond) *Additive {
	specs := BellPartials()
	for i := range specs {
		specs[i].Amplitude *= gain
	}

	a := NewAdditiveFromSpecs(specs, frequency, duration, sampleRate)
	a.params.Preset = PresetBell
	a.params.Gain = gain
	return a
}
