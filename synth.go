package klangfarb

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/gopxl/beep"
)

// Synth is the host-facing voice. It holds the control parameters and the
// instrument built from them, and produces frames on demand. A Synth is not
// safe for concurrent use; the host serializes setters and frame requests.
type Synth struct {
	params Params
	rand   Rand

	fm   *FM
	bank *Bank
	add  *Additive
}

var _ beep.Streamer = (*Synth)(nil)

func New(p Params) (*Synth, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Synth{
		params: p.clone(),
		rand:   rand.New(rand.NewSource(1)),
	}
	s.fm = NewFM(p.FMFrequency, p.FMDepth, p.SampleRate)
	s.fm.Enabled = p.FM
	s.Trigger()
	return s, nil
}

// Params returns a copy of the current parameters.
func (s *Synth) Params() Params {
	return s.params.clone()
}

// Instrument returns the active synthesis strategy.
func (s *Synth) Instrument() Instrument {
	if s.params.Model == ModelAdditive {
		return s.add
	}
	return s.bank
}

// SetRand replaces the random source used by the noise waveforms.
func (s *Synth) SetRand(r Rand) {
	s.rand = r
	if s.bank != nil {
		s.bank.SetRand(r)
	}
	if s.add != nil {
		s.add.SetRand(r)
	}
}

// Trigger starts a new note from the current parameters. The bank keeps its
// oscillator phases and gets a fresh envelope; the additive model is rebuilt.
func (s *Synth) Trigger() {
	p := &s.params
	switch p.Model {
	case ModelAdditive:
		if p.Preset == PresetBell {
			s.add = NewBell(p.Frequency, p.Duration, p.Gain, p.SampleRate)
		} else {
			s.add = NewAdditive(p.Partials, p.Frequency, p.Duration, p.SampleRate)
		}
		s.add.SetWaveform(p.Waveform)
		s.add.SetBend(p.Bend, p.BendPoint)
		s.add.SetRand(s.rand)
	default:
		env := s.newEnvelope()
		if s.bank == nil {
			s.bank = NewBank(p.Frequency, p.Ratios, env, p.SampleRate)
			s.bank.SetFM(s.fm)
			s.bank.SetWaveform(p.Waveform)
			s.bank.SetBend(p.Bend, p.BendPoint)
			s.bank.SetRand(s.rand)
		} else {
			s.bank.Retrigger(env)
		}
		s.bank.Continuous = p.Continuous
	}
}

func (s *Synth) newEnvelope() *Envelope {
	p := &s.params
	return NewEnvelope(p.Attack, p.Decay, p.Sustain, p.Release, p.SampleRate)
}

// SetSampleRate applies to the oscillators immediately and to envelopes and
// ramps built from now on. Existing ramps keep their length.
func (s *Synth) SetSampleRate(sr SamplesPerSecond) error {
	if sr <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", sr)
	}
	if sr == s.params.SampleRate {
		return nil
	}
	s.params.SampleRate = sr
	s.fm.SetSampleRate(sr)
	if s.bank != nil {
		s.bank.SetSampleRate(sr)
	}
	if s.add != nil {
		s.add.SetSampleRate(sr)
	}
	return nil
}

func (s *Synth) SetFrequency(f Hz) {
	if f == s.params.Frequency {
		return
	}
	s.params.Frequency = f
	if s.bank != nil {
		s.bank.SetFrequency(f)
	}
	if s.add != nil {
		s.add.SetFrequency(f)
	}
}

func (s *Synth) SetWaveform(w Waveform) error {
	if w < Sine || w > BrownNoise {
		return fmt.Errorf("invalid waveform %d", int(w))
	}
	if w == s.params.Waveform {
		return nil
	}
	s.params.Waveform = w
	if s.bank != nil {
		s.bank.SetWaveform(w)
	}
	if s.add != nil {
		s.add.SetWaveform(w)
	}
	return nil
}

// SetEnvelope changes the ADSR shape. New values retrigger the bank
// envelope from its start; the same values change nothing.
func (s *Synth) SetEnvelope(attack, decay Millisecond, sustain Amplitude, release Millisecond) error {
	if sustain < 0 || sustain > 1 {
		return fmt.Errorf("sustain must be within [0, 1], got %v", sustain)
	}
	p := &s.params
	if attack == p.Attack && decay == p.Decay && sustain == p.Sustain && release == p.Release {
		return nil
	}
	p.Attack, p.Decay, p.Sustain, p.Release = attack, decay, sustain, release
	if s.bank != nil {
		s.bank.Retrigger(s.newEnvelope())
	}
	return nil
}

func (s *Synth) SetFM(enabled bool, frequency, depth Hz) {
	p := &s.params
	p.FM, p.FMFrequency, p.FMDepth = enabled, frequency, depth
	s.fm.Enabled = enabled
	s.fm.Depth = depth
	s.fm.SetFrequency(frequency)
}

// SetBend enables the phase warp. The breakpoint is clamped strictly inside
// the cycle.
func (s *Synth) SetBend(enabled bool, bp Breakpoint) {
	bp = NewBreakpoint(bp.X, bp.Y)
	s.params.Bend, s.params.BendPoint = enabled, bp
	if s.bank != nil {
		s.bank.SetBend(enabled, bp)
	}
	if s.add != nil {
		s.add.SetBend(enabled, bp)
	}
}

func (s *Synth) SetContinuous(c bool) {
	s.params.Continuous = c
	if s.bank != nil {
		s.bank.Continuous = c
	}
}

// SetModel switches synthesis strategy and triggers a note with it.
func (s *Synth) SetModel(m Model) error {
	if m == s.params.Model {
		return nil
	}
	p := s.params.clone()
	p.Model = m
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	s.Trigger()
	return nil
}

// SetPartials sets the additive multipliers and clears any preset. The new
// partials sound from the next Trigger.
func (s *Synth) SetPartials(multipliers []float64) error {
	if len(multipliers) == 0 {
		return fmt.Errorf("additive model needs at least one partial")
	}
	if s.params.Preset == "" && slices.Equal(multipliers, s.params.Partials) {
		return nil
	}
	s.params.Partials = slices.Clone(multipliers)
	s.params.Preset = ""
	return nil
}

// SetPreset selects a named additive preset from the next Trigger.
func (s *Synth) SetPreset(name string) error {
	if name != "" && name != PresetBell {
		return fmt.Errorf("unknown preset: %q", name)
	}
	if name == "" && len(s.params.Partials) == 0 {
		return fmt.Errorf("additive model needs partials or a preset")
	}
	s.params.Preset = name
	return nil
}

func (s *Synth) SetDuration(d Millisecond) {
	s.params.Duration = d
}

func (s *Synth) SetGain(g Amplitude) {
	s.params.Gain = g
}

func (s *Synth) SetCutoff(f Hz) {
	s.params.Cutoff = f
}

// Complete reports whether the current note has ended. A continuous bank
// never completes.
func (s *Synth) Complete() bool {
	if s.params.Model == ModelAdditive {
		return s.add.Complete()
	}
	return !s.bank.Continuous && s.bank.envelope.Done()
}

// Advance returns the next sample, or silence once the note has ended.
func (s *Synth) Advance() Sample {
	var (
		v  Sample
		ok bool
	)
	if s.params.Model == ModelAdditive {
		v, ok = s.add.Advance()
	} else {
		v, ok = s.bank.Advance()
	}
	if !ok {
		return 0
	}
	return v
}

// Produce fills out with the next len(out) samples.
func (s *Synth) Produce(out []Sample) int {
	for i := range out {
		out[i] = s.Advance()
	}
	return len(out)
}

// Frames returns the next n samples in a new slice.
func (s *Synth) Frames(n int) []Sample {
	if n <= 0 {
		return nil
	}
	out := make([]Sample, n)
	s.Produce(out)
	return out
}

// Stream writes the mono output to both channels. It never drains; use Once
// for a streamer that ends with the note.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := s.Advance()
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (s *Synth) Err() error {
	return nil
}

// Once streams the current note and drains when it completes.
func (s *Synth) Once() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if s.Complete() {
			return 0, false
		}
		return s.Stream(samples)
	})
}
