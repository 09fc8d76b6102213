package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/c-bata/go-prompt"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/whyrusleeping/klangfarb"
)

var commands = []prompt.Suggest{
	{Text: "freq", Description: "freq = 440"},
	{Text: "wave", Description: "wave = sine|square|triangle|saw|white|brown"},
	{Text: "adsr", Description: "adsr = attack, decay, sustain, release"},
	{Text: "fm", Description: "fm = on, freq, depth | fm = off"},
	{Text: "bend", Description: "bend = on, x, y | bend = off"},
	{Text: "continuous", Description: "continuous = on|off"},
	{Text: "model", Description: "model = bank|additive"},
	{Text: "partials", Description: "partials = [1, 2, 4]"},
	{Text: "preset", Description: "preset = bell"},
	{Text: "duration", Description: "duration = 2000"},
	{Text: "gain", Description: "gain = 0.1"},
	{Text: "cutoff", Description: "cutoff = 800"},
	{Text: "rate", Description: "rate = 48000"},
	{Text: "trigger", Description: "start a new note"},
	{Text: "show", Description: "print the current parameters"},
	{Text: "exit", Description: "quit"},
}

func completer(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(commands, d.GetWordBeforeCursor(), true)
}

func runPrompt(s *klangfarb.Synth) error {
	for {
		t := prompt.Input("> ", completer)
		if t == "exit" {
			return nil
		}
		if strings.TrimSpace(t) == "" {
			continue
		}

		speaker.Lock()
		err := runCmd(s, t)
		speaker.Unlock()
		if err != nil {
			fmt.Println("ERROR: ", err)
		}
	}
}

// runCmd applies one `key = value, ...` command to s. The caller serializes
// it against the audio callback.
func runCmd(s *klangfarb.Synth, line string) error {
	tokens, err := tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	key := tokens[0]
	var args [][]string
	if len(tokens) > 1 {
		if tokens[1] != "=" {
			return errors.Errorf("expected '=' after %q", key)
		}
		args = splitArgs(tokens[2:])
	}

	switch key {
	case "trigger":
		s.Trigger()
	case "show":
		fmt.Printf("%+v\n", s.Params())
	case "freq":
		f, err := floatArgs(args, 1)
		if err != nil {
			return err
		}
		s.SetFrequency(f[0])
	case "wave":
		if err := argCount(args, 1); err != nil {
			return err
		}
		w, err := klangfarb.ParseWaveform(args[0][0])
		if err != nil {
			return err
		}
		return s.SetWaveform(w)
	case "adsr":
		f, err := floatArgs(args, 4)
		if err != nil {
			return err
		}
		return s.SetEnvelope(ms(f[0]), ms(f[1]), f[2], ms(f[3]))
	case "fm":
		on, rest, err := switchArgs(args)
		if err != nil {
			return err
		}
		p := s.Params()
		freq, depth := p.FMFrequency, p.FMDepth
		if len(rest) > 0 {
			f, err := floatArgs(rest, 2)
			if err != nil {
				return err
			}
			freq, depth = f[0], f[1]
		}
		s.SetFM(on, freq, depth)
	case "bend":
		on, rest, err := switchArgs(args)
		if err != nil {
			return err
		}
		bp := s.Params().BendPoint
		if len(rest) > 0 {
			f, err := floatArgs(rest, 2)
			if err != nil {
				return err
			}
			bp = klangfarb.Breakpoint{X: f[0], Y: f[1]}
		}
		s.SetBend(on, bp)
	case "continuous":
		on, _, err := switchArgs(args)
		if err != nil {
			return err
		}
		s.SetContinuous(on)
	case "model":
		if err := argCount(args, 1); err != nil {
			return err
		}
		m, err := klangfarb.ParseModel(args[0][0])
		if err != nil {
			return err
		}
		return s.SetModel(m)
	case "partials":
		if err := argCount(args, 1); err != nil {
			return err
		}
		items, _, err := scanTuple("[", "]", args[0])
		if err != nil {
			return errors.Wrap(err, "partials")
		}
		f, err := floatArgs(items, len(items))
		if err != nil {
			return err
		}
		return s.SetPartials(f)
	case "preset":
		if len(args) == 0 {
			return s.SetPreset("")
		}
		return s.SetPreset(args[0][0])
	case "duration":
		f, err := floatArgs(args, 1)
		if err != nil {
			return err
		}
		s.SetDuration(ms(f[0]))
	case "gain":
		f, err := floatArgs(args, 1)
		if err != nil {
			return err
		}
		s.SetGain(f[0])
	case "cutoff":
		f, err := floatArgs(args, 1)
		if err != nil {
			return err
		}
		s.SetCutoff(f[0])
	case "rate":
		f, err := floatArgs(args, 1)
		if err != nil {
			return err
		}
		return s.SetSampleRate(f[0])
	default:
		return errors.Errorf("unknown command: %q", key)
	}
	return nil
}

func ms(v float64) klangfarb.Millisecond {
	if v < 0 {
		return 0
	}
	return klangfarb.Millisecond(v)
}

func argCount(args [][]string, n int) error {
	if len(args) != n {
		return errors.Errorf("expected %d arguments, got %d", n, len(args))
	}
	return nil
}

func floatArgs(args [][]string, n int) ([]float64, error) {
	if err := argCount(args, n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, a := range args {
		if len(a) != 1 {
			return nil, errors.Errorf("argument %d: expected a number", i)
		}
		v, err := strconv.ParseFloat(a[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// switchArgs reads a leading on/off and returns whatever follows it.
func switchArgs(args [][]string) (bool, [][]string, error) {
	if len(args) == 0 || len(args[0]) != 1 {
		return false, nil, errors.Errorf("expected on or off")
	}
	switch args[0][0] {
	case "on", "true", "1":
		return true, args[1:], nil
	case "off", "false", "0":
		return false, args[1:], nil
	default:
		return false, nil, errors.Errorf("expected on or off, got %q", args[0][0])
	}
}

// splitArgs splits tokens on top-level commas. Bracketed lists stay whole.
func splitArgs(tokens []string) [][]string {
	var out [][]string
	var depth, cur int
	for i, t := range tokens {
		switch t {
		case "[", "(":
			depth++
		case "]", ")":
			depth--
		case ",":
			if depth == 0 {
				out = append(out, tokens[cur:i])
				cur = i + 1
			}
		}
	}
	if cur < len(tokens) {
		out = append(out, tokens[cur:])
	}
	return out
}

// scans tokens of the form [ 1, 2.5, 4 ]
// returns [][]string{ ["1"], ["2.5"], ["4"] }
func scanTuple(beg, end string, tokens []string) ([][]string, int, error) {
	if len(tokens) == 0 || tokens[0] != beg {
		return nil, 0, fmt.Errorf("expected %q at beginning of sequence", beg)
	}

	var out [][]string

	var cur int = 1
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == "," {
			if i-cur == 0 {
				return nil, 0, fmt.Errorf("empty argument at index %d", len(out))
			}

			out = append(out, tokens[cur:i])
			cur = i + 1
		}

		if tokens[i] == end {
			if i > cur {
				out = append(out, tokens[cur:i])
			}
			return out, i, nil
		}
	}

	return nil, 0, fmt.Errorf("missing close sigil")
}

func tokenize(s string) ([]string, error) {
	var out []string
	var wordstart int
	inword := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch {
		case unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]),
			runes[i] == '.',
			runes[i] == '-':
			if !inword {
				inword = true
				wordstart = i
			}
		case unicode.IsSpace(runes[i]):
			if inword {
				out = append(out, string(runes[wordstart:i]))
				inword = false
			}
		case runes[i] == '=',
			runes[i] == ',',
			runes[i] == '(',
			runes[i] == ')',
			runes[i] == '[',
			runes[i] == ']':
			if inword {
				out = append(out, string(runes[wordstart:i]))
				inword = false
			}
			out = append(out, string(runes[i]))
		default:
			return nil, fmt.Errorf("invalid character at index %d: %q", i, runes[i])
		}
	}
	if inword {
		out = append(out, string(runes[wordstart:]))
	}

	return out, nil
}
