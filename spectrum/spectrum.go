// Package spectrum computes magnitude spectra of rendered sample blocks.
package spectrum

import (
	"math/cmplx"

	"github.com/maddyblue/go-dsp/fft"
)

// Magnitudes returns the normalized magnitude of each bin from DC up to and
// including Nyquist.
func Magnitudes(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}

	res := fft.FFTReal(samples)

	out := make([]float64, len(res)/2+1)
	for i, c := range res[:len(out)] {
		out[i] = cmplx.Abs(c) / float64(len(samples))
	}
	return out
}

// BinFrequency is the center frequency of bin i for a block of n samples.
func BinFrequency(i, n int, sampleRate float64) float64 {
	return float64(i) * sampleRate / float64(n)
}

// Peak returns the frequency of the strongest non-DC bin.
func Peak(samples []float64, sampleRate float64) float64 {
	mags := Magnitudes(samples)

	best := 1
	for i := 1; i < len(mags); i++ {
		if mags[i] > mags[best] {
			best = i
		}
	}
	if best >= len(mags) {
		return 0
	}
	return BinFrequency(best, len(samples), sampleRate)
}

// Energy sums bin magnitudes whose frequency lies within [lo, hi].
func Energy(samples []float64, sampleRate, lo, hi float64) float64 {
	mags := Magnitudes(samples)

	var sum float64
	for i, m := range mags {
		f := BinFrequency(i, len(samples), sampleRate)
		if f >= lo && f <= hi {
			sum += m
		}
	}
	return sum
}
