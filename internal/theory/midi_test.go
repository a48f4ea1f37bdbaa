package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteNameToMIDI(t *testing.T) {
	tests := []struct {
		note     string
		expected int
	}{
		{"C4", 60},
		{"A4", 69},
		{"F#3", 54},
		{"Bb2", 46},
		{"E1", 28},
		{"C-1", 0},
		{"G9", 127},
		{"B#3", 60},
		{"Cb4", 59},
		{"c4", 60},
		{"G♯4", 68},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			midi, err := NoteNameToMIDI(tt.note)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, midi)
		})
	}
}

func TestNoteNameToMIDIErrors(t *testing.T) {
	for _, note := range []string{"", "C", "H4", "Cx", "4"} {
		_, err := NoteNameToMIDI(note)
		assert.Error(t, err, "note %q", note)
	}
}

func TestMIDINumbers(t *testing.T) {
	assert.Equal(t, []int{60, 64, 67}, MIDINumbers(GetChordNoteStrings("Cmaj", 0)))
	assert.Equal(t, []int{60}, MIDINumbers([]string{"C4", "junk"}))
}
