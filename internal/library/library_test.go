package library

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
)

const testLibraryYAML = `
categories:
  - name: Pop
    sets:
      - name: Axis
        chords: ["Cmaj", "Gmaj", "Amin", "Fmaj"]
      - chords: ["Dmin7", "G7", "Cmaj7"]
  - name: Blues
    sets:
      - chords: ["C7", "F7", "C7 / E", "G7"]
      - chords: []
`

func loadTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Load([]byte(testLibraryYAML))
	require.NoError(t, err)
	return lib
}

func TestLoad(t *testing.T) {
	lib := loadTestLibrary(t)
	assert.Equal(t, []string{"Pop", "Blues"}, lib.Categories())

	pop, ok := lib.Category("Pop")
	require.True(t, ok)
	require.Len(t, pop, 2)
	assert.Equal(t, "Axis", pop[0].Name)
	assert.Equal(t, "Dmin7, G7, Cmaj7", pop[1].Name, "unnamed sets are named after their chords")

	blues, ok := lib.Category("Blues")
	require.True(t, ok)
	assert.Len(t, blues, 1, "empty sets are skipped")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "categories: ["},
		{"missing name", "categories:\n  - sets: []\n"},
		{"duplicate", "categories:\n  - name: A\n  - name: A\n"},
		{"reserved", fmt.Sprintf("categories:\n  - name: %s\n", GeneratedCategory)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultLibraryParses(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	categories := lib.Categories()
	require.NotEmpty(t, categories)
	assert.Equal(t, "70's Funk & Soul", categories[0])

	for _, name := range categories {
		sets, ok := lib.Category(name)
		require.True(t, ok)
		for _, set := range sets {
			for _, chord := range set.Chords {
				_, err := theory.ParseChord(chord)
				assert.NoError(t, err, "category %q chord %q", name, chord)
			}
		}
	}
}

func TestCategoryReturnsCopy(t *testing.T) {
	lib := loadTestLibrary(t)
	pop, _ := lib.Category("Pop")
	pop[0].Chords[0] = "changed"

	again, _ := lib.Category("Pop")
	assert.Equal(t, "Cmaj", again[0].Chords[0])
}

func TestSet(t *testing.T) {
	lib := loadTestLibrary(t)

	set, ok := lib.Set("Pop", "Axis")
	require.True(t, ok)
	assert.Equal(t, []string{"Cmaj", "Gmaj", "Amin", "Fmaj"}, set.Chords)

	_, ok = lib.Set("Pop", "missing")
	assert.False(t, ok)
	_, ok = lib.Set("Jazz", "Axis")
	assert.False(t, ok)
}

func TestAddGenerated(t *testing.T) {
	lib := loadTestLibrary(t)
	_, ok := lib.Category(GeneratedCategory)
	assert.False(t, ok)

	first := lib.AddGenerated("sad piano", []string{"Amin", "Fmaj"})
	second := lib.AddGenerated("happy ukulele", []string{"Cmaj", "Gmaj"})
	assert.Equal(t, "AI: sad piano", first.Name)

	assert.Equal(t, GeneratedCategory, lib.Categories()[0])
	sets, ok := lib.Category(GeneratedCategory)
	require.True(t, ok)
	assert.Equal(t, []string{second.Name, first.Name}, []string{sets[0].Name, sets[1].Name})
}

func TestAddGeneratedIsBounded(t *testing.T) {
	lib := loadTestLibrary(t)
	for i := 0; i < MaxGeneratedSets+5; i++ {
		lib.AddGenerated(fmt.Sprintf("idea %d", i), []string{"Cmaj"})
	}

	sets, _ := lib.Category(GeneratedCategory)
	require.Len(t, sets, MaxGeneratedSets)
	assert.Equal(t, fmt.Sprintf("AI: idea %d", MaxGeneratedSets+4), sets[0].Name)
}

func TestAddGeneratedConcurrent(t *testing.T) {
	lib := loadTestLibrary(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lib.AddGenerated(fmt.Sprintf("idea %d", i), []string{"Cmaj"})
			lib.Categories()
		}(i)
	}
	wg.Wait()

	sets, _ := lib.Category(GeneratedCategory)
	assert.Len(t, sets, 20)
}

func TestStats(t *testing.T) {
	lib := loadTestLibrary(t)
	assert.Equal(t, Stats{Categories: 2, Sets: 3}, lib.Stats())

	lib.AddGenerated("late night", []string{"Cmaj7", "Amin7"})
	assert.Equal(t, Stats{Categories: 2, Sets: 3, Generated: 1}, lib.Stats())
}

func TestGeneratedSetName(t *testing.T) {
	assert.Equal(t, "AI: short", GeneratedSetName("short"))
	assert.Equal(t, "AI: "+strings.Repeat("a", 30), GeneratedSetName(strings.Repeat("a", 30)))
	assert.Equal(t, "AI: "+strings.Repeat("b", 27)+"...", GeneratedSetName(strings.Repeat("b", 31)))
	assert.Equal(t, "AI: "+strings.Repeat("é", 27)+"...", GeneratedSetName(strings.Repeat("é", 40)))
}

func TestDisplayUnknownCategory(t *testing.T) {
	lib := loadTestLibrary(t)
	_, err := lib.Display("Jazz", DisplayOptions{})
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}
