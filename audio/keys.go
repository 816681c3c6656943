package audio

import (
	"errors"
	"fmt"
	"strings"
)

// NumKeys is the number of keys on the keyboard, C to high C.
const NumKeys = 13

var ErrUnknownKey = errors.New("unknown key")

// KeyNames are indexed by dense key index.
var KeyNames = [NumKeys]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B", "C'",
}

// pianoKeyBits maps a dense key index to its bit in the piano peripheral's
// key register. Bits 11, 12 and 15 are not wired to keys.
var pianoKeyBits = [NumKeys]uint{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 13, 14}

// DecodeMask converts a raw piano key register into per-key pressed flags.
func DecodeMask(mask uint16) [NumKeys]bool {
	var pressed [NumKeys]bool
	for key, bit := range pianoKeyBits {
		pressed[key] = mask&(1<<bit) != 0
	}
	return pressed
}

// EncodeMask is the inverse of DecodeMask.
func EncodeMask(pressed [NumKeys]bool) uint16 {
	var mask uint16
	for key, bit := range pianoKeyBits {
		if pressed[key] {
			mask |= 1 << bit
		}
	}
	return mask
}

// KeyIndex parses a key name such as "C#" or "c'" into its index.
func KeyIndex(name string) (int, error) {
	for i, n := range KeyNames {
		if strings.EqualFold(n, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Edge is the transition of a single key during one tick.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeDown
	EdgeHeld
	EdgeUp
)

func (e Edge) String() string {
	return [...]string{
		EdgeNone: "none",
		EdgeDown: "down",
		EdgeHeld: "held",
		EdgeUp:   "up",
	}[e]
}

// Edges holds one edge per key.
type Edges [NumKeys]Edge

// keyScanner turns the set of currently pressed keys into edges by comparing
// it against the previous tick. Down, held and up are mutually exclusive.
type keyScanner struct {
	prev [NumKeys]bool
}

func (s *keyScanner) scan(pressed [NumKeys]bool) Edges {
	var edges Edges
	for key := range pressed {
		switch now, before := pressed[key], s.prev[key]; {
		case now && !before:
			edges[key] = EdgeDown
		case now && before:
			edges[key] = EdgeHeld
		case !now && before:
			edges[key] = EdgeUp
		}
	}
	s.prev = pressed
	return edges
}

func (s *keyScanner) reset() {
	s.prev = [NumKeys]bool{}
}
