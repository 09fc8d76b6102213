// Package klangfarb is a monophonic synthesis core meant to be driven by an
// audio host one buffer at a time. Every component is a plain state machine
// advanced one sample per call; nothing allocates on the sample path.
package klangfarb

// Sample is one mono output value, nominally in [-1, 1].
type Sample = float64

// Amplitude is a gain value. Envelope stages run between 0 and 1.
type Amplitude = float64

// Phase is a normalized position in [0, 1) within one waveform cycle.
type Phase = float64

type Hz = float64

type SamplesPerSecond = float64

type Millisecond uint32

// MsToSamples converts a duration to a sample count. The sample rate is
// truncated to whole samples per millisecond before multiplying, so rates
// below 1000 give zero-length durations.
func MsToSamples(ms Millisecond, sampleRate SamplesPerSecond) int {
	if sampleRate <= 0 {
		return 0
	}
	multiplier := int(sampleRate) / 1000
	return multiplier * int(ms)
}

func slope(start, end Amplitude, samples int) float64 {
	if samples == 0 {
		return 0
	}
	return (end - start) / float64(samples)
}
