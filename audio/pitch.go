package audio

import (
	"errors"
	"fmt"
)

// ErrPitchRange is returned when an octave, offset and key do not address an
// entry of the pitch table.
var ErrPitchRange = errors.New("pitch out of range")

// pitches holds equal tempered frequencies in Hz, seven octaves starting at A1.
var pitches = [...]int{
	55, 58, 62, 65, 69, 73, 78, 82, 87, 92, 98, 104,
	110, 117, 123, 131, 139, 147, 156, 165, 175, 185, 196, 208,
	220, 233, 247, 262, 277, 294, 311, 330, 349, 370, 392, 415,
	440, 466, 494, 523, 554, 587, 622, 659, 698, 740, 784, 831,
	880, 932, 988, 1047, 1109, 1175, 1245, 1319, 1397, 1480, 1568, 1661,
	1760, 1865, 1976, 2093, 2217, 2349, 2489, 2637, 2794, 2960, 3136, 3322,
	3520, 3729, 3951, 4186, 4435, 4699, 4978, 5274, 5588, 5920, 6272, 6645,
}

const semitones = 12

// NumPitches is the size of the pitch table.
const NumPitches = len(pitches)

// BaseIndex returns the pitch table index of key 0 for the given octave and offset.
func BaseIndex(octave, offset int) int {
	return offset + octave*semitones
}

// Pitch looks up the frequency of key for the given octave and offset.
func Pitch(octave, offset, key int) (int, error) {
	return pitchAt(BaseIndex(octave, offset) + key)
}

func pitchAt(index int) (int, error) {
	if index < 0 || index >= len(pitches) {
		return 0, fmt.Errorf("%w: index %d not in 0-%d", ErrPitchRange, index, len(pitches)-1)
	}
	return pitches[index], nil
}
