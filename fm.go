package klangfarb

// FM perturbs a carrier's frequency with a sine modulator, one step per
// sample.
type FM struct {
	Enabled bool
	Depth   Hz

	mod *Osc
}

func NewFM(frequency, depth Hz, sampleRate SamplesPerSecond) *FM {
	return &FM{
		Enabled: true,
		Depth:   depth,
		mod:     NewOsc(frequency, sampleRate),
	}
}

func (fm *FM) Frequency() Hz {
	return fm.mod.Frequency()
}

func (fm *FM) SetFrequency(f Hz) {
	fm.mod.SetFrequency(f)
}

func (fm *FM) SetSampleRate(sr SamplesPerSecond) {
	fm.mod.SetSampleRate(sr)
}

// Offset advances the modulator and returns the frequency deviation for this
// sample. A disabled FM returns 0 and leaves the modulator still.
func (fm *FM) Offset() Hz {
	if fm == nil || !fm.Enabled {
		return 0
	}
	return fm.mod.Advance() * fm.Depth
}

// Apply sets the carrier to base plus this sample's deviation. It must run
// before the carrier is advanced for the same sample.
func (fm *FM) Apply(carrier *Osc, base Hz) {
	carrier.SetFrequency(base + fm.Offset())
}
