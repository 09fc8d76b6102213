package klangfarb

// Line ramps linearly from start to end over a fixed number of samples. Both
// endpoints are emitted, so a line of n samples yields n+1 values. Each value
// is computed from its index rather than accumulated, so the last value is
// exactly end.
type Line struct {
	start   Amplitude
	end     Amplitude
	samples int
	index   int
}

func NewLine(start, end Amplitude, duration Millisecond, sampleRate SamplesPerSecond) *Line {
	return NewLineSamples(start, end, MsToSamples(duration, sampleRate))
}

func NewLineSamples(start, end Amplitude, samples int) *Line {
	if samples < 0 {
		samples = 0
	}
	return &Line{start: start, end: end, samples: samples}
}

// Advance returns the next value, or false once the line is spent.
func (l *Line) Advance() (Amplitude, bool) {
	if l.index > l.samples {
		return 0, false
	}
	v := l.At(l.index)
	l.index++
	return v, true
}

// At returns the value at index i without moving the line.
func (l *Line) At(i int) Amplitude {
	switch {
	case i <= 0 || l.samples == 0:
		return l.start
	case i >= l.samples:
		return l.end
	}
	return l.start + (l.end-l.start)*float64(i)/float64(l.samples)
}

// Len is the number of values the line emits in total.
func (l *Line) Len() int {
	return l.samples + 1
}

func (l *Line) Samples() int {
	return l.samples
}

func (l *Line) Slope() float64 {
	return slope(l.start, l.end, l.samples)
}

func (l *Line) Done() bool {
	return l.index > l.samples
}

// Interpolate materializes a line of the given number of steps.
func Interpolate(start, end Amplitude, steps int) []Amplitude {
	l := NewLineSamples(start, end, steps)
	out := make([]Amplitude, 0, l.Len())
	for {
		v, ok := l.Advance()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
