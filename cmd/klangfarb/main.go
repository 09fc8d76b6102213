package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/whyrusleeping/klangfarb"
)

const (
	sampleRate = 44100
	bufferSize = time.Second / 20
)

var sr = beep.SampleRate(sampleRate)

func newSynth(edit func(*klangfarb.Params)) (*klangfarb.Synth, error) {
	p := klangfarb.DefaultParams()
	p.SampleRate = sampleRate
	if edit != nil {
		edit(&p)
	}
	return klangfarb.New(p)
}

func initSpeaker() error {
	if err := speaker.Init(sr, sr.N(bufferSize)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	return nil
}

func playBell(freq float64) error {
	s, err := newSynth(func(p *klangfarb.Params) {
		p.Model = klangfarb.ModelAdditive
		p.Preset = klangfarb.PresetBell
		p.Frequency = freq
		p.Duration = 4000
	})
	if err != nil {
		return err
	}

	if err := initSpeaker(); err != nil {
		return err
	}

	done := make(chan bool)
	speaker.Play(beep.Seq(s.Once(), beep.Callback(func() {
		done <- true
	})))
	<-done
	fmt.Println("DONE")
	return nil
}

func play() error {
	s, err := newSynth(func(p *klangfarb.Params) {
		p.Continuous = true
	})
	if err != nil {
		return err
	}

	if err := initSpeaker(); err != nil {
		return err
	}
	speaker.Play(s)

	return runPrompt(s)
}

func main() {
	cmd := "play"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "play":
		err = play()
	case "bell":
		err = playBell(440)
	case "draw":
		err = draw()
	default:
		fmt.Println("usage: klangfarb [play|bell|draw]")
		os.Exit(2)
	}
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}
}

var vals = []string{
	"C",
	"C#",
	"D",
	"Eb",
	"E",
	"F",
	"F#",
	"G",
	"G#",
	"A",
	"Bb",
	"B",
}

func noteToString(note int64) string {
	return vals[note%int64(len(vals))]
}

func noteToFreq(note int64) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12)
}
