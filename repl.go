package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/mrdg/keyenv/audio"
	"github.com/mrdg/keyenv/dub"
)

type env struct {
	engine     *audio.Engine
	recorder   *audio.Recorder
	sampleRate int
	out        io.Writer

	// offline is set when rendering to a file instead of a device
	offline  *audio.Offline
	rendered [][]float32
}

func (e *env) setProp(prop string, v interface{}) error {
	return e.engine.Set(prop, v)
}

func (e *env) getProp(prop string) (interface{}, error) {
	return e.engine.Get(prop)
}

// wait lets ticks envelope ticks pass, in real time or by rendering them.
func (e *env) wait(ticks int) {
	frames := int(float64(ticks) * float64(e.sampleRate) / e.engine.TickRate())
	if e.offline == nil {
		time.Sleep(time.Duration(frames) * time.Second / time.Duration(e.sampleRate))
		return
	}
	e.appendRendered(e.offline.Render(frames))
}

func (e *env) appendRendered(buf [][]float32) {
	if e.rendered == nil {
		e.rendered = make([][]float32, len(buf))
	}
	for c := range buf {
		e.rendered[c] = append(e.rendered[c], buf[c]...)
	}
}

func (e *env) eval(input string) (string, error) {
	command, err := dub.Parse(input)
	if err != nil {
		return "", err
	}
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(command.Args) > arity {
				return "", fmt.Errorf("%s: wrong number of arguments: want at most %v, got %v",
					cmd.name, arity, len(command.Args))
			}
		} else if len(command.Args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		result, err := cmd.run(e, command.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

// runScript evaluates lines in order and stops at the first error. Blank lines
// and lines starting with # are skipped.
func (e *env) runScript(lines []string) error {
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := e.eval(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n+1, err)
		}
		if result != "" {
			fmt.Fprintln(e.out, result)
		}
	}
	return nil
}

func repl(env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	log.SetOutput(rl.Stderr())

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if result, err := env.eval(line); err != nil {
			fmt.Println(err)
		} else if result != "" {
			fmt.Println(result)
		}
	}
}
