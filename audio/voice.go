package audio

import (
	"fmt"
	"log"
)

// Sounder produces the actual sound for a voice. Volumes are in 0..MaxLevel.
type Sounder interface {
	StartVoice(freq, volume int) (int, error)
	SetVolume(handle, volume int)
	StopVoice(handle int)
}

type voiceState int

const (
	stateIdle voiceState = iota
	stateSounding
)

func (s voiceState) String() string {
	if s == stateSounding {
		return "sounding"
	}
	return "idle"
}

type voice struct {
	state   voiceState
	handle  int
	elapsed int // ticks since key down
	volume  int // last volume sent to the sounder
}

// VoiceBank drives one voice per key through the envelope.
type VoiceBank struct {
	voices [NumKeys]voice
	out    Sounder
}

func NewVoiceBank(out Sounder) *VoiceBank {
	return &VoiceBank{out: out}
}

// Advance applies one tick of key edges. base is the pitch table index of key
// 0. Every voice observes the same envelope checkpoints. Keys whose pitch is
// outside the table are not started and reported in the returned error.
func (b *VoiceBank) Advance(env *Envelope, edges Edges, base int) error {
	var errs []error
	for key, edge := range edges {
		switch edge {
		case EdgeDown:
			if err := b.down(key, base+key, env.StartVolume); err != nil {
				errs = append(errs, err)
			}
		case EdgeHeld:
			b.hold(key, env)
		case EdgeUp:
			b.up(key)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return fmt.Errorf("%v (and %d more)", errs[0], len(errs)-1)
	}
}

func (b *VoiceBank) down(key, index, volume int) error {
	freq, err := pitchAt(index)
	if err != nil {
		return fmt.Errorf("key %s: %w", KeyNames[key], err)
	}
	v := &b.voices[key]
	if v.state == stateSounding {
		// a down without an up in between, don't leak the old sound
		b.out.StopVoice(v.handle)
	}
	volume = ClampLevel(volume)
	handle, err := b.out.StartVoice(freq, volume)
	if err != nil {
		*v = voice{}
		return fmt.Errorf("key %s: %w", KeyNames[key], err)
	}
	*v = voice{state: stateSounding, handle: handle, volume: volume}
	return nil
}

func (b *VoiceBank) hold(key int, env *Envelope) {
	v := &b.voices[key]
	if v.state != stateSounding {
		return
	}
	v.volume = ClampLevel(env.VolumeAt(v.elapsed))
	b.out.SetVolume(v.handle, v.volume)
	v.elapsed++
}

func (b *VoiceBank) up(key int) {
	v := &b.voices[key]
	if v.state != stateSounding {
		return
	}
	b.out.StopVoice(v.handle)
	*v = voice{}
}

// KillAll silences every voice, whatever its state.
func (b *VoiceBank) KillAll() {
	var n int
	for key := range b.voices {
		if b.voices[key].state == stateSounding {
			b.out.StopVoice(b.voices[key].handle)
			n++
		}
		b.voices[key] = voice{}
	}
	if n > 0 {
		log.Printf("voices: killed %d sounding voices", n)
	}
}

// VoiceStatus describes one slot of the bank.
type VoiceStatus struct {
	Key      string
	Sounding bool
	Handle   int
	Elapsed  int
	Volume   int
}

func (b *VoiceBank) Status() [NumKeys]VoiceStatus {
	var st [NumKeys]VoiceStatus
	for key, v := range b.voices {
		st[key] = VoiceStatus{
			Key:      KeyNames[key],
			Sounding: v.state == stateSounding,
			Handle:   v.handle,
			Elapsed:  v.elapsed,
			Volume:   v.volume,
		}
	}
	return st
}
