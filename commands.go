package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrdg/keyenv/audio"
	"github.com/mrdg/keyenv/dub"
)

type command struct {
	name  string
	args  string
	help  string
	run   func(*env, []dub.Node) (string, error)
	arity int // -n means len(args) must be <= n
}

var commands []command

func init() {
	// help refers to commands, so the table is filled in here
	commands = []command{
		{"set", "<prop> <value>", "set a property", setCommand, 2},
		{"get", "<prop>", "print a property", getCommand, 1},
		{"props", "", "list all properties", propsCommand, 0},
		{"preset", "[name]", "load an envelope preset, or list them", presetCommand, -1},
		{"press", "<keys>", "press keys, e.g. press '1,3:5", pressCommand, 1},
		{"release", "<keys>", "release keys", releaseCommand, 1},
		{"panic", "", "release all keys and silence every voice", panicCommand, 0},
		{"octave", "[n]", "set or print the octave", octaveCommand, -1},
		{"pitch", "[n]", "set or print the pitch offset", pitchCommand, -1},
		{"status", "", "show envelope and voices", statusCommand, 0},
		{"wait", "<ticks>", "let envelope ticks pass", waitCommand, 1},
		{"record", "<file> <seconds>", "record output to a wav file", recordCommand, 2},
		{"help", "", "list commands", helpCommand, 0},
	}
}

func setCommand(env *env, args []dub.Node) (string, error) {
	var prop string
	if err := readArgs(args[:1], &prop); err != nil {
		return "", err
	}
	switch v := args[1].(type) {
	case dub.Int:
		return "", env.setProp(prop, int(v))
	case dub.Float:
		return "", env.setProp(prop, float64(v))
	case dub.String:
		return "", env.setProp(prop, string(v))
	case dub.Identifier:
		return "", env.setProp(prop, string(v))
	default:
		return "", fmt.Errorf("unsupported property type: %v", v)
	}
}

func getCommand(env *env, args []dub.Node) (string, error) {
	var prop string
	if err := readArgs(args, &prop); err != nil {
		return "", err
	}
	v, err := env.getProp(prop)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

func propsCommand(env *env, args []dub.Node) (string, error) {
	var lines []string
	for _, k := range env.engine.Keys() {
		v, err := env.getProp(k)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("%-12s %v", k, v))
	}
	return strings.Join(lines, "\n"), nil
}

func presetCommand(env *env, args []dub.Node) (string, error) {
	if len(args) == 0 {
		return strings.Join(audio.PresetNames(), " "), nil
	}
	var name string
	if err := readArgs(args, &name); err != nil {
		return "", err
	}
	return "", audio.LoadPreset(name, env.engine)
}

func pressCommand(env *env, args []dub.Node) (string, error) {
	var keys []int
	if err := readArgs(args, &keys); err != nil {
		return "", err
	}
	for _, k := range keys {
		if err := env.engine.Press(k); err != nil {
			return "", err
		}
	}
	return "", nil
}

func releaseCommand(env *env, args []dub.Node) (string, error) {
	var keys []int
	if err := readArgs(args, &keys); err != nil {
		return "", err
	}
	for _, k := range keys {
		if err := env.engine.Release(k); err != nil {
			return "", err
		}
	}
	return "", nil
}

func panicCommand(env *env, args []dub.Node) (string, error) {
	env.engine.KillAll()
	return "", nil
}

func octaveCommand(env *env, args []dub.Node) (string, error) {
	return intPropCommand(env, audio.PropOctave, args)
}

func pitchCommand(env *env, args []dub.Node) (string, error) {
	return intPropCommand(env, audio.PropPitch, args)
}

func intPropCommand(env *env, prop string, args []dub.Node) (string, error) {
	if len(args) == 0 {
		v, err := env.getProp(prop)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	}
	var n int
	if err := readArgs(args, &n); err != nil {
		return "", err
	}
	return "", env.setProp(prop, n)
}

func statusCommand(env *env, args []dub.Node) (string, error) {
	var b strings.Builder
	renderStatus(env.engine.Status(), &b)
	return strings.TrimRight(b.String(), "\n"), nil
}

func waitCommand(env *env, args []dub.Node) (string, error) {
	var ticks int
	if err := readArgs(args, &ticks); err != nil {
		return "", err
	}
	if ticks < 0 {
		return "", fmt.Errorf("can't wait %d ticks", ticks)
	}
	env.wait(ticks)
	return "", nil
}

func recordCommand(env *env, args []dub.Node) (string, error) {
	var file string
	var seconds float64
	if err := readArgs(args, &file, &seconds); err != nil {
		return "", err
	}
	if seconds <= 0 {
		return "", fmt.Errorf("can't record %v seconds", seconds)
	}
	if env.recorder == nil {
		return "", errors.New("no recorder available")
	}
	numFrames := int(seconds * float64(env.sampleRate))
	sampleRate := env.sampleRate
	err := env.recorder.Record(numFrames, func(samples [][]float32) {
		if err := audio.SaveWAV(file, samples, sampleRate); err != nil {
			log.Printf("record: %v", err)
			return
		}
		log.Printf("record: wrote %s", file)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("recording %v seconds to %s", seconds, file), nil
}

func helpCommand(env *env, args []dub.Node) (string, error) {
	var lines []string
	for _, cmd := range commands {
		usage := strings.TrimSpace(cmd.name + " " + cmd.args)
		lines = append(lines, fmt.Sprintf("%-24s %s", usage, cmd.help))
	}
	return strings.Join(lines, "\n"), nil
}

func readArgs(args []dub.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case dub.String:
				*p = string(s)
			case dub.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch n := arg.(type) {
			case dub.Float:
				*p = float64(n)
			case dub.Int:
				*p = float64(n)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			n, ok := arg.(dub.Int)
			if !ok {
				return fmt.Errorf("argument error: expected a whole number")
			}
			*p = int(n)
		case *[]int:
			keys, err := readKeys(arg)
			if err != nil {
				return err
			}
			*p = keys
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}

// readKeys accepts a key expression, a 1-based key number or a key name and
// returns zero-based key indices.
func readKeys(arg dub.Node) ([]int, error) {
	switch k := arg.(type) {
	case dub.KeyExpr:
		return k.Keys(audio.NumKeys, audio.KeyIndex)
	case dub.Int:
		if k < 1 || int(k) > audio.NumKeys {
			return nil, fmt.Errorf("key %d out of range 1-%d", k, audio.NumKeys)
		}
		return []int{int(k) - 1}, nil
	case dub.Identifier:
		idx, err := audio.KeyIndex(string(k))
		if err != nil {
			return nil, err
		}
		return []int{idx}, nil
	case dub.String:
		// "C'" can't be written as an identifier
		idx, err := audio.KeyIndex(string(k))
		if err != nil {
			return nil, err
		}
		return []int{idx}, nil
	default:
		return nil, fmt.Errorf("argument error: expected keys")
	}
}
