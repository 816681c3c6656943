package audio

import (
	"fmt"
	"sort"
)

type Device interface {
	Set(key string, val interface{}) error
	Get(key string) (interface{}, error)
}

type preset map[string]interface{}

var presets = map[string]preset{
	"init": {
		PropEnvAttack:  0,
		PropEnvDecay:   0,
		PropEnvSustain: 127,
		PropEnvRelease: 0,
	},
	"organ": {
		PropEnvAttack:  0,
		PropEnvDecay:   0,
		PropEnvSustain: 100,
		PropEnvRelease: 10,
	},
	"pluck": {
		PropEnvAttack:  0,
		PropEnvDecay:   40,
		PropEnvSustain: 0,
		PropEnvRelease: 0,
	},
	"pad": {
		PropEnvAttack:  90,
		PropEnvDecay:   60,
		PropEnvSustain: 80,
		PropEnvRelease: 90,
	},
	"swell": {
		PropEnvAttack:  127,
		PropEnvDecay:   0,
		PropEnvSustain: 64,
		PropEnvRelease: 0,
	},
}

func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	for k, v := range p {
		if err := d.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

func PresetNames() []string {
	var names []string
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
