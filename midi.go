package main

import (
	"fmt"
	"log"

	"github.com/mrdg/keyenv/audio"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// midiKey maps a note number to a key, with base being the note of the lowest key.
func midiKey(note, base int) (int, bool) {
	key := note - base
	if key < 0 || key >= audio.NumKeys {
		return 0, false
	}
	return key, true
}

// listenMIDI feeds note on and off messages from the named input port to the
// engine. The returned function stops listening and closes the driver.
func listenMIDI(e *audio.Engine, port string, baseNote int) (func(), error) {
	in, err := midi.FindInPort(port)
	if err != nil {
		return nil, fmt.Errorf("can't find midi port %q: %w", port, err)
	}
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		handleMIDI(e, msg, baseNote)
	}, midi.HandleError(func(err error) {
		log.Printf("midi: %v", err)
		// a lost device must not leave notes hanging
		e.KillAll()
	}))
	if err != nil {
		return nil, fmt.Errorf("can't listen to %s: %w", in, err)
	}
	log.Printf("midi: listening to %s", in)
	return func() {
		stop()
		midi.CloseDriver()
	}, nil
}

func handleMIDI(e *audio.Engine, msg midi.Message, baseNote int) {
	var ch, note, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &note, &vel):
		if key, ok := midiKey(int(note), baseNote); ok {
			e.Press(key)
		}
	case msg.GetNoteEnd(&ch, &note):
		if key, ok := midiKey(int(note), baseNote); ok {
			e.Release(key)
		}
	}
}
