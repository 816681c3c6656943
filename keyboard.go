package main

import (
	"fmt"
	"log"
	"unicode"

	"github.com/eiannone/keyboard"
	"github.com/mrdg/keyenv/audio"
)

type keyAction int

const (
	actionNone keyAction = iota
	actionToggle
	actionPanic
	actionOctaveUp
	actionOctaveDown
	actionPitchUp
	actionPitchDown
	actionQuit
)

// lookupKey maps a terminal key to what it does. key is only meaningful for
// actionToggle.
func lookupKey(char rune, key keyboard.Key, keyMap string) (keyAction, int) {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return actionQuit, 0
	case keyboard.KeySpace:
		return actionPanic, 0
	case keyboard.KeyArrowUp:
		return actionOctaveUp, 0
	case keyboard.KeyArrowDown:
		return actionOctaveDown, 0
	case keyboard.KeyArrowRight:
		return actionPitchUp, 0
	case keyboard.KeyArrowLeft:
		return actionPitchDown, 0
	}
	if char == 0 {
		return actionNone, 0
	}
	for i, r := range []rune(keyMap) {
		if unicode.ToLower(r) == unicode.ToLower(char) {
			return actionToggle, i
		}
	}
	return actionNone, 0
}

// playKeyboard plays the engine from the terminal. Terminals don't report key
// releases, so a key sounds until it is hit a second time.
func playKeyboard(e *audio.Engine, keyMap string) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("can't open keyboard: %w", err)
	}
	defer keyboard.Close()

	fmt.Printf("keys %q toggle notes, arrows change octave and pitch, space silences, esc quits\r\n", keyMap)

	var held [audio.NumKeys]bool
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return err
		}
		action, k := lookupKey(char, key, keyMap)
		switch action {
		case actionQuit:
			e.KillAll()
			return nil
		case actionToggle:
			if held[k] {
				err = e.Release(k)
			} else {
				err = e.Press(k)
			}
			held[k] = !held[k]
		case actionPanic:
			e.KillAll()
			held = [audio.NumKeys]bool{}
		case actionOctaveUp:
			err = bump(e, audio.PropOctave, 1)
		case actionOctaveDown:
			err = bump(e, audio.PropOctave, -1)
		case actionPitchUp:
			err = bump(e, audio.PropPitch, 1)
		case actionPitchDown:
			err = bump(e, audio.PropPitch, -1)
		}
		if err != nil {
			log.Printf("keyboard: %v", err)
		}
	}
}

// bump adds delta to an int property.
func bump(d audio.Device, prop string, delta int) error {
	v, err := d.Get(prop)
	if err != nil {
		return err
	}
	n, ok := v.(int)
	if !ok {
		return fmt.Errorf("%s is not an int: %v", prop, v)
	}
	if err := d.Set(prop, n+delta); err != nil {
		return err
	}
	log.Printf("keyboard: %s %d\r", prop, n+delta)
	return nil
}
