package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mrdg/keyenv/audio"
)

const defaultConfig = `
{
	"sampleRate": 44100,
	"bufferSize": 512,
	"tickRate": 60,
	"backend": "portaudio",
	"channels": 13,
	"watchConfig": true,
	"midiPort": "",
	"midiBaseNote": 60,
	"keyMap": "zsxdcvgbhnjm,",
	"props": {
		"level": 0,
		"psg.duty": 0.25,
		"octave": 5,
		"pitch": 3
	}
}
`

type StaticConfig struct {
	SampleRate   int     `json:"sampleRate"`
	BufferSize   int     `json:"bufferSize"`
	TickRate     float64 `json:"tickRate"`
	Backend      string  `json:"backend"`
	Channels     int     `json:"channels"`
	WatchConfig  bool    `json:"watchConfig"`
	MidiPort     string  `json:"midiPort"`
	MidiBaseNote int     `json:"midiBaseNote"`
	KeyMap       string  `json:"keyMap"`
}

// DynamicConfig can be changed while running.
type DynamicConfig struct {
	Props map[string]interface{} `json:"props"`
}

type Config struct {
	StaticConfig
	DynamicConfig
}

// ReadConfig loads the config at p, creating it with defaults if it does not exist.
func ReadConfig(p string) (*Config, error) {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		err = os.WriteFile(p, []byte(defaultConfig), 0644)
		if err != nil {
			return nil, fmt.Errorf("can't write defaultConfig: %w", err)
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal([]byte(defaultConfig), &c); err != nil {
		return nil, fmt.Errorf("unmarshalling defaults: %w", err)
	}
	c.Props = nil
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshalling: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sampleRate must be positive, got %d", c.SampleRate)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %v", c.TickRate)
	}
	switch c.Backend {
	case "portaudio", "oto":
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if n := len([]rune(c.KeyMap)); n != audio.NumKeys {
		return fmt.Errorf("keyMap must have %d keys, got %d", audio.NumKeys, n)
	}
	return nil
}

// apply sets every configured property on d, in a stable order.
func (c DynamicConfig) apply(d audio.Device) error {
	keys := make([]string, 0, len(c.Props))
	for k := range c.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := d.Set(k, c.Props[k]); err != nil {
			return err
		}
	}
	return nil
}
