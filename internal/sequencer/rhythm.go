package sequencer

import (
	"sort"
)

// RhythmTemplate defines timing and accent patterns for a chord within one bar
type RhythmTemplate struct {
	Name string
	// Offsets within a bar (in beats, 0-4 for 4/4 time)
	Offsets []float64
	// Velocity multipliers for accents (1.0 = normal)
	Accents []float64
	// Duration multiplier (affects note length, 0.0-1.0)
	Articulation float64
	// Arpeggiate plays one chord tone per hit instead of the whole chord
	Arpeggiate bool
}

// Rhythm template constants
const (
	articulationFull    = 1.0
	articulationHigh    = 0.9
	articulationMedium  = 0.8
	articulationMidHigh = 0.85
	articulationShort   = 0.4
	articulationOverlap = 1.1
)

// SustainTemplate holds each chord for its whole duration
const SustainTemplate = "sustain"

var rhythmTemplates = map[string]RhythmTemplate{
	// Basic subdivisions
	"whole": {
		Name:         "whole",
		Offsets:      []float64{0},
		Accents:      []float64{1.0},
		Articulation: articulationFull,
	},
	"half": {
		Name:         "half",
		Offsets:      []float64{0, 2},
		Accents:      []float64{1.0, 0.9},
		Articulation: articulationFull,
	},
	"quarters": {
		Name:         "quarters",
		Offsets:      []float64{0, 1, 2, 3},
		Accents:      []float64{1.0, 0.8, 0.9, 0.8},
		Articulation: articulationHigh,
	},
	"8ths": {
		Name:         "8ths",
		Offsets:      []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5},
		Accents:      []float64{1.0, 0.7, 0.9, 0.7, 0.95, 0.7, 0.9, 0.7},
		Articulation: articulationMidHigh,
	},
	"16ths": {
		Name:         "16ths",
		Offsets:      []float64{0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3, 3.25, 3.5, 3.75},
		Accents:      []float64{1.0, 0.6, 0.8, 0.6, 0.9, 0.6, 0.8, 0.6, 0.95, 0.6, 0.8, 0.6, 0.9, 0.6, 0.8, 0.6},
		Articulation: articulationMedium,
	},
	// Swing patterns
	"swing": {
		Name:         "swing",
		Offsets:      []float64{0, 0.67, 1, 1.67, 2, 2.67, 3, 3.67}, // Triplet feel
		Accents:      []float64{1.0, 0.7, 0.9, 0.7, 0.95, 0.7, 0.9, 0.7},
		Articulation: articulationMidHigh,
	},
	"shuffle": {
		Name:         "shuffle",
		Offsets:      []float64{0, 0.67, 1, 1.67, 2, 2.67, 3, 3.67},
		Accents:      []float64{1.0, 0.8, 0.9, 0.8, 1.0, 0.8, 0.9, 0.8},
		Articulation: articulationHigh,
	},
	// Latin patterns
	"samba": {
		Name:         "samba",
		Offsets:      []float64{0, 0.5, 1.5, 2, 3, 3.5},
		Accents:      []float64{1.0, 0.7, 0.9, 0.85, 0.95, 0.7},
		Articulation: articulationMedium,
	},
	"tresillo": {
		Name:         "tresillo",
		Offsets:      []float64{0, 1.5, 3}, // 3+3+2 pattern
		Accents:      []float64{1.0, 0.9, 0.95},
		Articulation: articulationHigh,
	},
	// Syncopated patterns
	"offbeat": {
		Name:         "offbeat",
		Offsets:      []float64{0.5, 1.5, 2.5, 3.5},
		Accents:      []float64{0.9, 0.85, 0.9, 0.85},
		Articulation: articulationMidHigh,
	},
	"syncopated": {
		Name:         "syncopated",
		Offsets:      []float64{0, 0.5, 1.5, 2, 3, 3.5},
		Accents:      []float64{1.0, 0.8, 0.9, 0.85, 0.95, 0.8},
		Articulation: articulationMidHigh,
	},
	"anticipation": {
		Name:         "anticipation",
		Offsets:      []float64{0, 1, 1.75, 3, 3.75}, // Push before beats 2 and 4
		Accents:      []float64{1.0, 0.8, 0.9, 0.85, 0.9},
		Articulation: articulationMidHigh,
	},
	// Arpeggio patterns
	"broken": {
		Name:         "broken",
		Offsets:      []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5},
		Accents:      []float64{1.0, 0.8, 0.85, 0.75, 0.95, 0.8, 0.85, 0.75},
		Articulation: articulationHigh,
		Arpeggiate:   true,
	},
	"alberti": {
		Name:         "alberti",
		Offsets:      []float64{0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75, 2, 2.25, 2.5, 2.75, 3, 3.25, 3.5, 3.75},
		Accents:      []float64{1.0, 0.7, 0.85, 0.7, 0.9, 0.7, 0.85, 0.7, 0.95, 0.7, 0.85, 0.7, 0.9, 0.7, 0.85, 0.7},
		Articulation: articulationMidHigh,
		Arpeggiate:   true,
	},
	"stride": {
		Name:         "stride",
		Offsets:      []float64{0, 1, 2, 3}, // Stride piano: bass-chord-bass-chord
		Accents:      []float64{1.0, 0.8, 0.9, 0.8},
		Articulation: articulationHigh,
	},
	// Special
	"staccato": {
		Name:         "staccato",
		Offsets:      []float64{0, 1, 2, 3},
		Accents:      []float64{1.0, 0.9, 0.95, 0.9},
		Articulation: articulationShort, // Short notes
	},
	"legato": {
		Name:         "legato",
		Offsets:      []float64{0, 1, 2, 3},
		Accents:      []float64{0.9, 0.85, 0.9, 0.85},
		Articulation: articulationOverlap, // Slightly overlapping
	},
}

// GetRhythmTemplate returns a rhythm template by name
func GetRhythmTemplate(name string) (RhythmTemplate, bool) {
	tmpl, ok := rhythmTemplates[name]
	return tmpl, ok
}

// RhythmTemplateNames lists the available templates, sorted, sustain first
func RhythmTemplateNames() []string {
	names := make([]string, 0, len(rhythmTemplates))
	for name := range rhythmTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{SustainTemplate}, names...)
}
