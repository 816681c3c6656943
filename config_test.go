package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrdg/keyenv/audio"
)

func TestDefaultConfigUnmarshal(t *testing.T) {
	var c Config
	err := json.Unmarshal([]byte(defaultConfig), &c)
	if err != nil {
		t.Fatalf("error unmarshalling: %v", err)
	}
	if err := c.validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if c.SampleRate == 0 || c.TickRate == 0 {
		t.Fatalf("expected sampleRate and tickRate to be set")
	}
}

func TestReadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyenv.json")
	c, err := ReadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default config to be written: %v", err)
	}
	if want, got := "portaudio", c.Backend; want != got {
		t.Errorf("wrong backend: want %v, got %v", want, got)
	}
}

func TestParseConfigPartial(t *testing.T) {
	c, err := parseConfig([]byte(`{"backend": "oto", "props": {"env.attack": 20}}`))
	if err != nil {
		t.Fatal(err)
	}
	if want, got := "oto", c.Backend; want != got {
		t.Errorf("wrong backend: want %v, got %v", want, got)
	}
	if want, got := 44100, c.SampleRate; want != got {
		t.Errorf("expected default sample rate: want %v, got %v", want, got)
	}
	if want, got := 1, len(c.Props); want != got {
		t.Errorf("expected only configured props, got %v", c.Props)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	for _, data := range []string{
		`{"backend": "alsa"}`,
		`{"tickRate": 0}`,
		`{"keyMap": "abc"}`,
		`{"sampleRate": -1}`,
		`{`,
	} {
		if _, err := parseConfig([]byte(data)); err == nil {
			t.Errorf("%s: expected error", data)
		}
	}
}

func TestConfigApply(t *testing.T) {
	props := audio.NewProps()
	e := audio.NewEngine(props, nil, 44100, 60)
	c, err := parseConfig([]byte(`{"props": {"env.attack": 20, "env.sustain": 300, "octave": 4}}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.apply(props); err != nil {
		t.Fatal(err)
	}
	if want, got := (audio.Levels{Attack: 20, Sustain: 127}), e.Levels(); want != got {
		t.Errorf("wrong levels: want %+v, got %+v", want, got)
	}
	if want, got := 4, e.Status().Octave; want != got {
		t.Errorf("wrong octave: want %v, got %v", want, got)
	}

	c.Props = map[string]interface{}{"nope": 1}
	if err := c.apply(props); err == nil {
		t.Errorf("expected error for unknown property")
	}
}

func TestReloadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyenv.json")
	c, err := reloadConfig(path)
	if err != nil || c != nil {
		t.Errorf("expected no config and no error, got %v %v", c, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("reload must not create the config file: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"props": {"octave": 3}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err = reloadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 3.0, c.Props["octave"]; want != got {
		t.Errorf("wrong octave: want %v, got %v", want, got)
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyenv.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	configs := make(chan *Config, 4)
	errs := make(chan error, 4)
	done := make(chan struct{})
	defer close(done)
	if err := Watch(path, configs, errs, done); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"props": {"octave": 2}}`), 0644); err != nil {
		t.Fatal(err)
	}
	// the file can be seen half written, so wait for the final version
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-configs:
			if c.Props["octave"] == 2.0 {
				return
			}
		case <-errs:
		case <-timeout:
			t.Fatal("no config reload")
		}
	}
}
