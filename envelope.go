package klangfarb

// Envelope is an attack, decay, release shape built from three lines. The
// sustain level is where decay ends and release starts; there is no held
// sustain stage. An Envelope plays once; retriggering means building a new
// one.
type Envelope struct {
	Attack  *Line
	Decay   *Line
	Release *Line

	position int
}

func NewEnvelope(attack, decay Millisecond, sustain Amplitude, release Millisecond, sampleRate SamplesPerSecond) *Envelope {
	return &Envelope{
		Attack:  NewLine(0, 1, attack, sampleRate),
		Decay:   NewLine(1, sustain, decay, sampleRate),
		Release: NewLine(sustain, 0, release, sampleRate),
	}
}

func (e *Envelope) Advance() (Amplitude, bool) {
	v, ok := e.Attack.Advance()
	if !ok {
		v, ok = e.Decay.Advance()
		if !ok {
			v, ok = e.Release.Advance()
		}
	}
	if ok {
		e.position++
	}
	return v, ok
}

// At looks up the amplitude at an absolute sample index from the start of
// the envelope, independent of how far it has been advanced.
func (e *Envelope) At(index int) (Amplitude, bool) {
	if index < 0 {
		return 0, false
	}
	for _, l := range []*Line{e.Attack, e.Decay, e.Release} {
		if index < l.Len() {
			return l.At(index), true
		}
		index -= l.Len()
	}
	return 0, false
}

func (e *Envelope) Len() int {
	return e.Attack.Len() + e.Decay.Len() + e.Release.Len()
}

// Position is the number of values pulled so far.
func (e *Envelope) Position() int {
	return e.position
}

func (e *Envelope) Done() bool {
	return e.Release.Done()
}
