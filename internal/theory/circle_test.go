package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircleNeighbours(t *testing.T) {
	tests := []struct {
		root          string
		dominant      string
		subdominant   string
		relativeMinor string
	}{
		{"C", "G", "F", "A"},
		{"G", "D", "C", "E"},
		{"E", "B", "A", "C#"},
		{"F#", "C#", "B", "D#"},
		{"F", "C", "Bb", "D"},
		{"Bb", "F", "Eb", "G"},
		{"Gb", "Db", "Cb", "Eb"},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			assert.Equal(t, tt.dominant, Dominant(tt.root))
			assert.Equal(t, tt.subdominant, Subdominant(tt.root))
			assert.Equal(t, tt.relativeMinor, RelativeMinor(tt.root))
		})
	}
}

func TestNoteFromCircleEnharmonicFallback(t *testing.T) {
	assert.Equal(t, "C", Dominant("E#"))
	assert.Equal(t, "Eb", Dominant("G#"))
	assert.Equal(t, "G", NoteFromCircle("C", 13))
}

func TestNoteFromCircleUnknownRoot(t *testing.T) {
	assert.Equal(t, "H", Dominant("H"))
	assert.Equal(t, "", Subdominant(""))
}

func TestRelativesOf(t *testing.T) {
	assert.Equal(t, Relatives{
		Root:          "D",
		RelativeMinor: "B",
		Dominant:      "A",
		Subdominant:   "G",
	}, RelativesOf("D"))
}
