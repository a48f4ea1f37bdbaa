package models

// NoteEvent represents a single musical note with timing and pitch information
type NoteEvent struct {
	MidiNoteNumber int     `json:"midiNoteNumber"`
	Velocity       int     `json:"velocity"`
	StartBeats     float64 `json:"startBeats"`
	DurationBeats  float64 `json:"durationBeats"`
}

// ChordEvent represents a chord with timing information
type ChordEvent struct {
	ChordSymbol   string  `json:"chordSymbol"`
	StartBeats    float64 `json:"startBeats"`
	DurationBeats float64 `json:"durationBeats"`
}

// RenderedSequence is the DAW-facing output of a rendered step sequence
type RenderedSequence struct {
	Template string       `json:"template"`
	Notes    []NoteEvent  `json:"notes"`
	Chords   []ChordEvent `json:"chords,omitempty"`
}
