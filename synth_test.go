package klangfarb

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/whyrusleeping/klangfarb/spectrum"
)

func newTestSynth(t testing.TB, edit func(*Params)) *Synth {
	t.Helper()
	p := DefaultParams()
	if edit != nil {
		edit(&p)
	}
	s, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewRejectsBadParams(t *testing.T) {
	for name, edit := range map[string]func(*Params){
		"zero sample rate": func(p *Params) { p.SampleRate = 0 },
		"sustain too high": func(p *Params) { p.Sustain = 1.5 },
		"bad waveform":     func(p *Params) { p.Waveform = Waveform(42) },
		"degenerate bend":  func(p *Params) { p.BendPoint = Breakpoint{X: 1, Y: 0.5} },
		"empty bank":       func(p *Params) { p.Ratios = nil },
		"unknown preset":   func(p *Params) { p.Model = ModelAdditive; p.Preset = "gong" },
		"no partials":      func(p *Params) { p.Model = ModelAdditive; p.Partials = nil },
		"bad model":        func(p *Params) { p.Model = Model(9) },
	} {
		p := DefaultParams()
		edit(&p)
		if _, err := New(p); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestProduceAcrossCallBoundaries(t *testing.T) {
	for _, w := range []Waveform{Sine, Triangle, BrownNoise, WhiteNoise} {
		edit := func(p *Params) {
			p.Waveform = w
			p.FM = true
			p.Ratios = []float64{1, 2.01}
			p.Bend = true
			p.BendPoint = Breakpoint{X: 0.3, Y: 0.6}
		}
		a := newTestSynth(t, edit)
		b := newTestSynth(t, edit)
		a.SetRand(rand.New(rand.NewSource(77)))
		b.SetRand(rand.New(rand.NewSource(77)))

		whole := a.Frames(64 + 512 + 3)

		var parts []Sample
		for _, n := range []int{64, 512, 3} {
			parts = append(parts, b.Frames(n)...)
		}

		if !slices.Equal(whole, parts) {
			t.Fatalf("%s: split buffers diverged from one buffer", w)
		}
	}
}

func TestSettersIdempotent(t *testing.T) {
	a := newTestSynth(t, func(p *Params) { p.FM = true })
	b := newTestSynth(t, func(p *Params) { p.FM = true })

	a.Frames(300)
	b.Frames(300)

	p := b.Params()
	if err := b.SetSampleRate(p.SampleRate); err != nil {
		t.Fatal(err)
	}
	b.SetFrequency(p.Frequency)
	if err := b.SetWaveform(p.Waveform); err != nil {
		t.Fatal(err)
	}
	if err := b.SetEnvelope(p.Attack, p.Decay, p.Sustain, p.Release); err != nil {
		t.Fatal(err)
	}
	b.SetFM(p.FM, p.FMFrequency, p.FMDepth)
	b.SetBend(p.Bend, p.BendPoint)
	b.SetContinuous(p.Continuous)
	if err := b.SetModel(p.Model); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPartials(p.Partials); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(a.Frames(2000), b.Frames(2000)) {
		t.Fatal("setting unchanged values changed the output")
	}
}

func TestTriggerResetsEnvelope(t *testing.T) {
	s := newTestSynth(t, nil)
	s.Frames(5000)

	s.Trigger()
	bank := s.Instrument().(*Bank)
	if pos := bank.Envelope().Position(); pos != 0 {
		t.Fatalf("expected envelope at 0 after trigger, got %d", pos)
	}
	if v := s.Advance(); v != 0 {
		t.Fatalf("expected silent first sample after trigger, got %v", v)
	}
}

func TestSetEnvelopeRetriggers(t *testing.T) {
	s := newTestSynth(t, nil)
	s.Frames(1000)

	if err := s.SetEnvelope(5, 5, 0.2, 5); err != nil {
		t.Fatal(err)
	}
	env := s.Instrument().(*Bank).Envelope()
	if env.Position() != 0 {
		t.Fatal("expected a fresh envelope")
	}
	if want := 3 + 3*MsToSamples(5, 44100); env.Len() != want {
		t.Fatalf("expected length %d, got %d", want, env.Len())
	}

	if err := s.SetEnvelope(5, 5, 2, 5); err == nil {
		t.Fatal("expected an error for sustain above 1")
	}
}

func TestOneShotCompletes(t *testing.T) {
	s := newTestSynth(t, func(p *Params) {
		p.Attack, p.Decay, p.Release = 1, 1, 1
	})
	n := s.Instrument().(*Bank).Envelope().Len()

	s.Frames(n - 1)
	if s.Complete() {
		t.Fatal("completed early")
	}
	s.Frames(1)
	if !s.Complete() {
		t.Fatal("expected note to be complete")
	}

	for _, v := range s.Frames(100) {
		if v != 0 {
			t.Fatalf("expected silence after the note, got %v", v)
		}
	}
}

func TestContinuousNeverCompletes(t *testing.T) {
	s := newTestSynth(t, func(p *Params) {
		p.Attack, p.Decay, p.Release = 1, 1, 1
		p.Continuous = true
	})

	out := s.Frames(44100)
	if s.Complete() {
		t.Fatal("continuous synth completed")
	}
	var energy float64
	for _, v := range out[len(out)-1000:] {
		energy += math.Abs(v)
	}
	if energy == 0 {
		t.Fatal("continuous synth went silent")
	}
}

func TestFrequencyChangeMidBuffer(t *testing.T) {
	s := newTestSynth(t, func(p *Params) {
		p.SampleRate = 8192
		p.Continuous = true
	})

	first := s.Frames(8192)
	s.SetFrequency(1000)
	second := s.Frames(8192)

	if p := spectrum.Peak(first, 8192); math.Abs(p-440) > 1 {
		t.Fatalf("expected 440hz before the change, got %v", p)
	}
	if p := spectrum.Peak(second, 8192); math.Abs(p-1000) > 1 {
		t.Fatalf("expected 1000hz after the change, got %v", p)
	}
}

func TestSetSampleRate(t *testing.T) {
	s := newTestSynth(t, nil)
	if err := s.SetSampleRate(0); err == nil {
		t.Fatal("expected an error for a zero sample rate")
	}
	if s.Params().SampleRate != 44100 {
		t.Fatal("rejected sample rate was applied")
	}

	before := s.Instrument().(*Bank).Envelope().Len()
	if err := s.SetSampleRate(22050); err != nil {
		t.Fatal(err)
	}
	if got := s.Instrument().(*Bank).Envelope().Len(); got != before {
		t.Fatalf("existing envelope was rescaled from %d to %d", before, got)
	}

	s.Trigger()
	want := 3 + MsToSamples(10, 22050) + MsToSamples(200, 22050) + MsToSamples(1000, 22050)
	if got := s.Instrument().(*Bank).Envelope().Len(); got != want {
		t.Fatalf("expected retriggered length %d, got %d", want, got)
	}
}

func TestAdditiveModel(t *testing.T) {
	s := newTestSynth(t, func(p *Params) { p.Duration = 50 })
	if err := s.SetModel(ModelAdditive); err != nil {
		t.Fatal(err)
	}

	add, ok := s.Instrument().(*Additive)
	if !ok {
		t.Fatalf("expected additive instrument, got %T", s.Instrument())
	}
	d := add.Describe()
	if d.Model != ModelAdditive || !slices.Equal(d.Partials, []float64{1, 2, 4}) || d.Frequency != 440 {
		t.Fatalf("unexpected description: %+v", d)
	}

	out := s.Frames(add.Len())
	if out[0] != 0 || out[len(out)-1] != 0 {
		t.Fatalf("expected silent endpoints, got %v and %v", out[0], out[len(out)-1])
	}
	if s.Complete() {
		t.Fatal("completed before the final partial ended")
	}
	s.Advance()
	if !s.Complete() {
		t.Fatal("expected additive note to be complete")
	}

	s.Trigger()
	if s.Complete() {
		t.Fatal("trigger must start a new note")
	}
}

func TestBellPreset(t *testing.T) {
	s := newTestSynth(t, func(p *Params) {
		p.Model = ModelAdditive
		p.Duration = 100
		p.SampleRate = 8000
	})
	if err := s.SetPreset("tuba"); err == nil {
		t.Fatal("expected an error for an unknown preset")
	}
	if err := s.SetPreset(PresetBell); err != nil {
		t.Fatal(err)
	}
	s.Trigger()

	bell := s.Instrument().(*Additive)
	if len(bell.Partials()) != 11 {
		t.Fatalf("expected the bell preset, got %d partials", len(bell.Partials()))
	}
	for _, v := range s.Frames(bell.Len() + 10) {
		if math.IsNaN(v) {
			t.Fatal("NaN in bell output")
		}
	}
	if !s.Complete() {
		t.Fatal("expected bell to complete")
	}

	if err := s.SetPartials([]float64{1, 3}); err != nil {
		t.Fatal(err)
	}
	s.Trigger()
	if n := len(s.Instrument().(*Additive).Partials()); n != 2 {
		t.Fatalf("expected 2 partials after SetPartials, got %d", n)
	}
}

func TestStream(t *testing.T) {
	s := newTestSynth(t, func(p *Params) { p.Waveform = Sawtooth })
	ref := newTestSynth(t, func(p *Params) { p.Waveform = Sawtooth })

	buf := make([][2]float64, 256)
	n, ok := s.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("expected %d samples and ok, got %d, %v", len(buf), n, ok)
	}
	if s.Err() != nil {
		t.Fatal(s.Err())
	}

	want := ref.Frames(len(buf))
	for i := range buf {
		if buf[i][0] != want[i] || buf[i][1] != want[i] {
			t.Fatalf("frame %d: expected %v on both channels, got %v", i, want[i], buf[i])
		}
	}
}

func TestOnceDrains(t *testing.T) {
	s := newTestSynth(t, func(p *Params) {
		p.Attack, p.Decay, p.Release = 1, 1, 1
	})
	once := s.Once()

	buf := make([][2]float64, 64)
	for i := 0; ; i++ {
		if i > 100 {
			t.Fatal("streamer never drained")
		}
		if _, ok := once.Stream(buf); !ok {
			break
		}
	}
}

func TestCutoffIsStoredOnly(t *testing.T) {
	a := newTestSynth(t, nil)
	b := newTestSynth(t, nil)
	b.SetCutoff(300)

	if b.Params().Cutoff != 300 {
		t.Fatal("cutoff not stored")
	}
	if !slices.Equal(a.Frames(1000), b.Frames(1000)) {
		t.Fatal("cutoff changed the output")
	}
}

func TestParamsCopied(t *testing.T) {
	p := DefaultParams()
	s, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	p.Ratios[0] = 3

	got := s.Params()
	if got.Ratios[0] != 1 {
		t.Fatal("synth shares the caller's ratio slice")
	}
	got.Partials[0] = 9
	if s.Params().Partials[0] != 1 {
		t.Fatal("Params leaks internal slices")
	}
}

func TestProduceDoesNotAllocate(t *testing.T) {
	s := newTestSynth(t, func(p *Params) {
		p.FM = true
		p.Bend = true
		p.Ratios = []float64{1, 2, 3}
	})
	buf := make([]Sample, 512)

	if n := testing.AllocsPerRun(100, func() { s.Produce(buf) }); n != 0 {
		t.Fatalf("expected no allocations, got %v", n)
	}
}

func BenchmarkProduce(b *testing.B) {
	s := newTestSynth(b, func(p *Params) {
		p.FM = true
		p.Continuous = true
		p.Ratios = []float64{1, 2, 4}
	})
	buf := make([]Sample, 512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Produce(buf)
	}
}

func BenchmarkBell(b *testing.B) {
	for i := 0; i < b.N; i++ {
		bell := NewBell(440, 1000, 0.1, 44100)
		for {
			if _, ok := bell.Advance(); !ok {
				break
			}
		}
	}
}
