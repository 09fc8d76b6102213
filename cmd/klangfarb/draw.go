package main

import (
	"fmt"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/whyrusleeping/klangfarb"
	"github.com/whyrusleeping/klangfarb/spectrum"
)

const (
	screenWidth  = 1000
	screenHeight = 600
)

var keyNotes = map[sdl.Keycode]int64{
	sdl.K_a: 60,
	sdl.K_s: 62,
	sdl.K_d: 64,
	sdl.K_f: 65,
	sdl.K_g: 67,
	sdl.K_h: 69,
	sdl.K_j: 71,
	sdl.K_k: 72,
	sdl.K_l: 74,
}

var keyWaves = map[sdl.Keycode]klangfarb.Waveform{
	sdl.K_1: klangfarb.Sine,
	sdl.K_2: klangfarb.Square,
	sdl.K_3: klangfarb.Triangle,
	sdl.K_4: klangfarb.Sawtooth,
	sdl.K_5: klangfarb.WhiteNoise,
	sdl.K_6: klangfarb.BrownNoise,
}

// draw opens a scope showing the latest output and its spectrum. Letter keys
// retrigger the voice at a new pitch, number keys pick the waveform, z and x
// shift the octave.
func draw() error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return errors.Wrap(err, "init sdl")
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("klangfarb", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, screenWidth, screenHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return errors.Wrap(err, "create renderer")
	}
	defer renderer.Destroy()

	s, err := newSynth(func(p *klangfarb.Params) {
		p.Ratios = []float64{1, 2}
	})
	if err != nil {
		return err
	}

	rec := NewRecorder(s, 10000)

	if err := initSpeaker(); err != nil {
		return err
	}
	speaker.Play(beep.Seq(rec, beep.Callback(func() {
		fmt.Println("DONE")
	})))

	dataPoints := make([]float64, 2048)

	running := true
	var octaveAdjust int64
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if event.Type != sdl.KEYDOWN || event.Repeat != 0 {
					continue
				}
				sym := event.Keysym.Sym
				switch sym {
				case sdl.K_z:
					octaveAdjust -= 12
					continue
				case sdl.K_x:
					octaveAdjust += 12
					continue
				}

				if w, ok := keyWaves[sym]; ok {
					speaker.Lock()
					err := s.SetWaveform(w)
					speaker.Unlock()
					if err != nil {
						fmt.Println("ERROR: ", err)
					}
					continue
				}

				note, ok := keyNotes[sym]
				if !ok {
					continue
				}
				note += octaveAdjust
				fmt.Printf("%s (%d)\n", noteToString(note), note)

				speaker.Lock()
				s.SetFrequency(noteToFreq(note))
				s.Trigger()
				speaker.Unlock()
			}
		}

		rec.GetSnapshot(dataPoints)
		magnitudeSpectrum := spectrum.Magnitudes(dataPoints)

		renderer.SetDrawColor(255, 255, 255, 255)
		renderer.Clear()

		graphData(renderer, dataPoints[:500], 50, 50, 600, 200, -1, 1)
		graphData(renderer, magnitudeSpectrum[:200], 50, 300, 600, 200, 0, 0.5)

		renderer.Present()
		sdl.Delay(16)
	}
	return nil
}

func graphData(renderer *sdl.Renderer, dataPoints []float64, x, y, width, height int32, minval, maxval float64) {
	renderer.SetDrawColor(0, 0, 0, 255)
	renderer.DrawLine(x, y+height/2, x+width, y+height/2)
	renderer.DrawLine(x, y, x, y+height)

	spread := maxval - minval
	scaleY := func(v float64) int32 {
		return y + height - int32((v-minval)/spread*float64(height))
	}

	renderer.SetDrawColor(255, 0, 0, 255)
	for i := 0; i < len(dataPoints)-1; i++ {
		x1 := x + int32(float64(i)*float64(width)/float64(len(dataPoints)-1))
		x2 := x + int32(float64(i+1)*float64(width)/float64(len(dataPoints)-1))
		renderer.DrawLine(x1, scaleY(dataPoints[i]), x2, scaleY(dataPoints[i+1]))
	}
}
