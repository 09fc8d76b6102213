package main

import (
	"sync"

	"github.com/gopxl/beep"
)

// Recorder keeps the most recent samples that passed through it so the
// scope can draw them from another goroutine.
type Recorder struct {
	lk       sync.Mutex
	buf      []float64
	position int

	sub beep.Streamer
}

func NewRecorder(sub beep.Streamer, size int) *Recorder {
	return &Recorder{
		buf: make([]float64, size),
		sub: sub,
	}
}

func (r *Recorder) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.sub.Stream(samples)

	r.lk.Lock()
	defer r.lk.Unlock()

	for i := range samples[:n] {
		r.buf[r.position%len(r.buf)] = samples[i][0]
		r.position++
	}
	return n, ok
}

// GetSnapshot copies the latest recorded samples into buf, oldest first.
func (r *Recorder) GetSnapshot(buf []float64) int {
	r.lk.Lock()
	defer r.lk.Unlock()

	lim := min(len(buf), len(r.buf))
	start := r.position + len(r.buf) - lim
	for i := 0; i < lim; i++ {
		buf[i] = r.buf[(start+i)%len(r.buf)]
	}
	return lim
}

func (r *Recorder) Err() error {
	return r.sub.Err()
}
