package theory

import (
	"fmt"
	"sort"
	"strings"
)

// BaseOctave is the octave a root-position chord starts in at octave offset 0.
const BaseOctave = 4

// Note is a spelled pitch class placed in an octave.
type Note struct {
	Name   string `json:"name"`
	Index  int    `json:"index"`
	Octave int    `json:"octave"`
}

// Pitch is the absolute pitch used to compare notes (octave*12 + pitch-class index).
func (n Note) Pitch() int {
	return n.Octave*semitonesPerOctave + n.Index
}

// String formats the note for a sampler, e.g. "C#4".
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// ResolveVoicing places the pitch classes root+intervals into octaves, ascending from
// BaseOctave+octaveOffset, then applies the bass note or, without one, the inversion.
// intervals must be ascending. An unknown root yields no notes.
func ResolveVoicing(root string, intervals []int, octaveOffset int, bass string, inversion int) []Note {
	rootIdx, err := PitchIndex(root)
	if err != nil {
		return nil
	}
	root = normalizeAccidentals(root)
	useSharps := UsesSharps(root) && !strings.HasSuffix(root, "b")

	notes := make([]Note, 0, len(intervals)+1)
	octave := BaseOctave + octaveOffset
	last := -1
	for _, iv := range intervals {
		if iv < 0 {
			panic(fmt.Sprintf("theory: negative interval %d", iv))
		}
		idx := mod12(rootIdx + iv)
		if idx < last {
			octave++
		}
		last = idx
		notes = append(notes, Note{Name: Spell(idx, useSharps), Index: idx, Octave: octave})
	}
	if len(notes) == 0 {
		return notes
	}

	if bass != "" {
		if bassIdx, err := PitchIndex(bass); err == nil {
			return applyBass(notes, normalizeAccidentals(bass), bassIdx)
		}
		return notes
	}

	if inversion > 0 {
		return invert(notes, inversion)
	}
	return notes
}

// applyBass puts the bass pitch class lowest. A chord tone is rotated into place;
// any other pitch is added below the chord, spelled as written.
func applyBass(notes []Note, bassName string, bassIdx int) []Note {
	pos := -1
	for i, n := range notes {
		if n.Index == bassIdx {
			pos = i
			break
		}
	}

	if pos >= 0 {
		out := make([]Note, 0, len(notes))
		out = append(out, notes[pos:]...)
		for _, n := range notes[:pos] {
			n.Octave++
			out = append(out, n)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Pitch() < out[j].Pitch() })
		return out
	}

	lowest := notes[0]
	for _, n := range notes[1:] {
		if n.Pitch() < lowest.Pitch() {
			lowest = n
		}
	}
	bassOctave := lowest.Octave
	for bassOctave*semitonesPerOctave+bassIdx >= lowest.Pitch() {
		bassOctave--
	}
	// Cb and B# would print in the neighbouring octave
	if crossesOctave(bassName, bassIdx) {
		bassName = Spell(bassIdx, !strings.HasSuffix(bassName, "b"))
	}
	out := make([]Note, 0, len(notes)+1)
	out = append(out, Note{Name: bassName, Index: bassIdx, Octave: bassOctave})
	return append(out, notes...)
}

func crossesOctave(name string, idx int) bool {
	if name == "" {
		return false
	}
	return (name[0] == 'B' && idx < 2) || (name[0] == 'C' && idx > 9)
}

// invert moves the lowest notes up an octave, one per inversion level.
// Levels beyond the note count rotate every note.
func invert(notes []Note, inversion int) []Note {
	n := inversion
	if n > len(notes) {
		n = len(notes)
	}
	out := make([]Note, 0, len(notes))
	out = append(out, notes[n:]...)
	for _, note := range notes[:n] {
		note.Octave++
		out = append(out, note)
	}
	return out
}

// GetChordNotes parses a chord name and resolves its voicing. Unparsable names yield no notes.
func GetChordNotes(chordName string, octaveOffset int) []Note {
	parsed, err := ParseChord(chordName)
	if err != nil {
		return nil
	}
	intervals := IntervalsFor(parsed.Quality).Intervals()
	return ResolveVoicing(parsed.Root, intervals, octaveOffset, parsed.Bass, parsed.Inversion)
}

// GetChordNoteStrings returns the chord's notes as sampler names such as "C4".
func GetChordNoteStrings(chordName string, octaveOffset int) []string {
	notes := GetChordNotes(chordName, octaveOffset)
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.String())
	}
	return out
}
