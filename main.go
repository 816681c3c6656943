package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrdg/keyenv/audio"
)

func main() {
	var (
		configPath = flag.String("config", "keyenv.json", "config file, created with defaults if missing")
		backend    = flag.String("backend", "", "audio backend: portaudio or oto")
		run        = flag.String("run", "", "script of commands to run at startup")
		render     = flag.String("render", "", "render the script to this wav file instead of playing")
		seconds    = flag.Float64("seconds", 0, "minimum length of a rendered file")
		midiPort   = flag.String("midi", "", "midi input port")
		keys       = flag.Bool("keys", false, "play from the terminal keyboard instead of the repl")
		preset     = flag.String("preset", "", "envelope preset to start with")
	)
	flag.Parse()

	config, err := ReadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *backend != "" {
		config.Backend = *backend
	}
	if *midiPort != "" {
		config.MidiPort = *midiPort
	}

	var script []string
	if *run != "" {
		script, err = readLines(*run)
		if err != nil {
			log.Fatal(err)
		}
	}

	sampleRate := float64(config.SampleRate)
	props := audio.NewProps()
	psg := audio.NewPSG(props, sampleRate, config.Channels)
	engine := audio.NewEngine(props, psg, sampleRate, config.TickRate)
	if err := config.apply(engine); err != nil {
		log.Fatal(err)
	}
	if *preset != "" {
		if err := audio.LoadPreset(*preset, engine); err != nil {
			log.Fatal(err)
		}
	}

	env := &env{
		engine:     engine,
		sampleRate: config.SampleRate,
		out:        os.Stdout,
	}

	if *render != "" {
		if err := renderFile(env, psg, config, script, *render, *seconds); err != nil {
			log.Fatal(err)
		}
		return
	}

	output, err := openOutput(config)
	if err != nil {
		log.Fatal(err)
	}
	env.recorder = &audio.Recorder{}
	output.AddTicker(engine)
	output.AddSources(psg, env.recorder)
	if err := output.Start(); err != nil {
		log.Fatal(err)
	}
	defer output.Stop()

	if config.WatchConfig {
		done := make(chan struct{})
		defer close(done)
		if err := watchConfig(*configPath, engine, done); err != nil {
			log.Printf("config: not watching %s: %v", *configPath, err)
		}
	}

	if config.MidiPort != "" {
		stop, err := listenMIDI(engine, config.MidiPort, config.MidiBaseNote)
		if err != nil {
			log.Fatal(err)
		}
		defer stop()
	}

	if err := env.runScript(script); err != nil {
		log.Fatal(err)
	}

	if *keys {
		err = playKeyboard(engine, config.KeyMap)
	} else {
		err = repl(env)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openOutput(config *Config) (audio.Output, error) {
	switch config.Backend {
	case "oto":
		s, err := audio.NewOtoSink(config.SampleRate, config.BufferSize)
		if err != nil {
			return nil, fmt.Errorf("oto: %w", err)
		}
		return s, nil
	default:
		s, err := audio.NewSink(float64(config.SampleRate), config.BufferSize)
		if err != nil {
			return nil, fmt.Errorf("portaudio: %w", err)
		}
		return s, nil
	}
}

// renderFile runs the script against an offline output and saves what it
// produced, padded to at least seconds.
func renderFile(env *env, psg *audio.PSG, config *Config, script []string, path string, seconds float64) error {
	offline := audio.NewOffline(config.BufferSize)
	offline.AddTicker(env.engine)
	offline.AddSources(psg)
	env.offline = offline

	if err := env.runScript(script); err != nil {
		return err
	}
	var have int
	if len(env.rendered) > 0 {
		have = len(env.rendered[0])
	}
	if want := int(seconds * float64(config.SampleRate)); want > have {
		env.appendRendered(offline.Render(want - have))
	}
	if len(env.rendered) == 0 || len(env.rendered[0]) == 0 {
		return fmt.Errorf("nothing to render: use wait or -seconds")
	}
	if err := audio.SaveWAV(path, env.rendered, config.SampleRate); err != nil {
		return err
	}
	log.Printf("render: wrote %s", path)
	return nil
}

func watchConfig(path string, d audio.Device, done <-chan struct{}) error {
	configs := make(chan *Config)
	errors := make(chan error)
	if err := Watch(path, configs, errors, done); err != nil {
		return err
	}
	go func() {
		for {
			select {
			case c := <-configs:
				if err := c.apply(d); err != nil {
					log.Printf("config: %v", err)
				}
			case err := <-errors:
				log.Printf("config: %v", err)
			case <-done:
				return
			}
		}
	}()
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
