package library

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
)

// maxTriadInversion is the highest inversion a chord without a seventh can take.
const maxTriadInversion = 2

// DisplayOptions controls how a category is presented.
type DisplayOptions struct {
	// Key transposes every set; empty leaves sets in their written key.
	Key string
	// Voicing applies Inversion to every chord without a bass note.
	Voicing   bool
	Inversion int
}

// Display returns a category's sets prepared for the pad grid.
func (l *Library) Display(category string, opts DisplayOptions) ([]models.ChordSet, error) {
	sets, ok := l.Category(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	for i, set := range sets {
		chords := set.Chords
		if opts.Key != "" {
			chords = theory.TransposeProgression(chords, opts.Key)
		}
		if opts.Voicing {
			chords = ApplyInversion(chords, opts.Inversion)
		}
		sets[i].Chords = chords
		if !strings.HasPrefix(set.Name, generatedPrefix) {
			sets[i].Name = strings.Join(chords, ", ")
		}
	}
	return sets, nil
}

// ApplyInversion replaces the inversion annotation of every chord that has no bass note.
// Chords without a seventh are capped at the second inversion. Unparsable chords pass through.
func ApplyInversion(chords []string, inversion int) []string {
	out := make([]string, len(chords))
	for i, chord := range chords {
		parsed, err := theory.ParseChord(chord)
		if err != nil || parsed.HasBass() {
			out[i] = chord
			continue
		}
		level := inversion
		if level > maxTriadInversion && !theory.HasSeventh(chord) {
			level = maxTriadInversion
		}
		out[i] = parsed.BaseName() + theory.InversionSuffix(level)
	}
	return out
}
