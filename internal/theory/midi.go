package theory

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	midiMin = 0
	midiMax = 127
)

// NoteNameToMIDI converts a note name like "E1", "C4", "F#3", "Bb2" or "C##4" to a MIDI note
// number, with C4 = 60. Results are clamped to 0-127.
func NoteNameToMIDI(noteName string) (int, error) {
	name := normalizeAccidentals(noteName)
	split := strings.IndexFunc(name, func(r rune) bool { return r == '-' || (r >= '0' && r <= '9') })
	if split <= 0 {
		return 0, fmt.Errorf("missing octave in note name: %s", noteName)
	}

	pitch := strings.ToUpper(name[:1]) + name[1:split]
	idx, err := PitchIndex(pitch)
	if err != nil {
		return 0, fmt.Errorf("invalid note name %s: %w", noteName, err)
	}
	octave, err := strconv.Atoi(name[split:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note name %s: %w", noteName, err)
	}

	// B# and Cb cross the octave boundary by spelling
	if crossesOctave(pitch, idx) {
		if pitch[0] == 'B' {
			octave++
		} else {
			octave--
		}
	}

	midi := (octave+1)*semitonesPerOctave + idx
	if midi < midiMin {
		midi = midiMin
	}
	if midi > midiMax {
		midi = midiMax
	}
	return midi, nil
}

// MIDINumbers converts sampler note names to MIDI numbers, skipping names that do not convert.
func MIDINumbers(notes []string) []int {
	out := make([]int, 0, len(notes))
	for _, n := range notes {
		if midi, err := NoteNameToMIDI(n); err == nil {
			out = append(out, midi)
		}
	}
	return out
}
