package theory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPitch is returned when a spelling is absent from the pitch tables.
var ErrUnknownPitch = errors.New("unknown pitch spelling")

// Signature classifies a key root by the accidental convention used to spell it.
type Signature string

const (
	Sharps Signature = "sharps"
	Flats  Signature = "flats"
)

const semitonesPerOctave = 12

var sharpNames = [semitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flatNames = [semitonesPerOctave]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// pitchIndexes maps every accepted spelling, including enharmonic doubles, to 0-11.
var pitchIndexes = map[string]int{
	"C": 0, "B#": 0, "Dbb": 0,
	"C#": 1, "Db": 1, "B##": 1,
	"D": 2, "C##": 2, "Ebb": 2,
	"D#": 3, "Eb": 3, "Fbb": 3,
	"E": 4, "Fb": 4, "D##": 4,
	"F": 5, "E#": 5, "Gbb": 5,
	"F#": 6, "Gb": 6, "E##": 6,
	"G": 7, "F##": 7, "Abb": 7,
	"G#": 8, "Ab": 8,
	"A": 9, "G##": 9, "Bbb": 9,
	"A#": 10, "Bb": 10, "Cbb": 10,
	"B": 11, "Cb": 11, "A##": 11,
}

// keySignatures lists the key roots the UI offers, by spelling convention.
// Roots missing here spell with sharps.
var keySignatures = map[string]Signature{
	"C": Sharps, "G": Sharps, "D": Sharps, "A": Sharps, "E": Sharps, "B": Sharps, "F#": Sharps, "C#": Sharps,
	"F": Flats, "Bb": Flats, "Eb": Flats, "Ab": Flats, "Db": Flats, "Gb": Flats, "Cb": Flats,
	"A#": Flats, "D#": Flats, "G#": Flats,
}

// PitchIndex returns the semitone index (0-11) of a pitch spelling.
func PitchIndex(spelling string) (int, error) {
	idx, ok := pitchIndexes[normalizeAccidentals(spelling)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, spelling)
	}
	return idx, nil
}

// Spell returns the canonical name for a semitone index. Indexes outside 0-11 wrap.
func Spell(index int, useSharps bool) string {
	index = mod12(index)
	if useSharps {
		return sharpNames[index]
	}
	return flatNames[index]
}

// SignatureOf returns the spelling convention of a key root.
func SignatureOf(key string) Signature {
	if sig, ok := keySignatures[normalizeAccidentals(key)]; ok {
		return sig
	}
	return Sharps
}

// UsesSharps reports whether a key root spells with sharps.
func UsesSharps(key string) bool {
	return SignatureOf(key) != Flats
}

// TransposeNote moves a pitch spelling by interval semitones. Unknown spellings are returned unchanged.
func TransposeNote(note string, interval int, useSharps bool) string {
	idx, err := PitchIndex(note)
	if err != nil {
		return note
	}
	return Spell(idx+interval, useSharps)
}

func normalizeAccidentals(s string) string {
	s = strings.ReplaceAll(s, "♯", "#")
	s = strings.ReplaceAll(s, "♭", "b")
	return strings.TrimSpace(s)
}

func mod12(n int) int {
	return ((n % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave
}
