package theory

import "strings"

// relativeMinorOffset is the distance from a major key down to its relative minor.
const relativeMinorOffset = 3

// KeyOptions are the key roots offered for transposition, in circle order.
var KeyOptions = []string{"C", "G", "D", "A", "E", "B", "F#", "C#", "F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb"}

// KeyLabel describes a key option with its relative minor, e.g. "A Major / F# Minor".
func KeyLabel(key string) string {
	return key + " Major / " + RelativeMinor(key) + " Minor"
}

// TransposeChord moves the root and bass of a chord by interval semitones and rebuilds the
// symbol from its parts. Unparsable chords are returned unchanged.
func TransposeChord(chord string, interval int, useSharps bool) string {
	parsed, err := ParseChord(chord)
	if err != nil {
		return chord
	}
	out := *parsed
	out.Root = TransposeNote(parsed.Root, interval, useSharps)
	if parsed.HasBass() {
		out.Bass = TransposeNote(parsed.Bass, interval, useSharps)
	}
	return out.String()
}

// TransposeProgression moves a progression into targetKey. The first chord sets the current
// key; a minor first chord is taken as the relative minor of the target. Progressions that
// cannot be placed, or an unknown target, come back unchanged.
func TransposeProgression(chords []string, targetKey string) []string {
	out := make([]string, len(chords))
	copy(out, chords)
	if len(chords) == 0 {
		return out
	}

	first, err := ParseChord(chords[0])
	if err != nil {
		return out
	}
	targetIdx, err := PitchIndex(targetKey)
	if err != nil {
		return out
	}
	originIdx, err := PitchIndex(first.Root)
	if err != nil {
		return out
	}

	if isMinorTonic(first) {
		targetIdx = mod12(targetIdx - relativeMinorOffset)
	}
	interval := mod12(targetIdx - originIdx)
	useSharps := UsesSharps(targetKey)

	for i, chord := range chords {
		out[i] = TransposeChord(chord, interval, useSharps)
	}
	return out
}

// KeyOf returns the major key label a progression is written in, judged from its first chord.
func KeyOf(chords []string) (string, bool) {
	if len(chords) == 0 {
		return "", false
	}
	first, err := ParseChord(chords[0])
	if err != nil {
		return "", false
	}
	idx, err := PitchIndex(first.Root)
	if err != nil {
		return "", false
	}
	if isMinorTonic(first) {
		idx = mod12(idx + relativeMinorOffset)
	}

	sharp, flat := Spell(idx, true), Spell(idx, false)
	sharpOK, flatOK := isKeyOption(sharp), isKeyOption(flat)
	switch {
	case sharpOK && !flatOK:
		return sharp, true
	case flatOK && !sharpOK:
		return flat, true
	case strings.HasSuffix(first.Root, "b"):
		return flat, true
	default:
		return sharp, true
	}
}

func isMinorTonic(chord *ParsedChord) bool {
	return strings.Contains(strings.ToLower(chord.Quality), "min")
}

func isKeyOption(key string) bool {
	for _, k := range KeyOptions {
		if k == key {
			return true
		}
	}
	return false
}
