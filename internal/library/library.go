// Package library holds the chord-set catalogue: static categories loaded from YAML plus
// the progressions generated during the life of the process.
package library

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/pkg/embedded"
)

const (
	// GeneratedCategory holds AI generated sets, newest first.
	GeneratedCategory = "AI Generated"
	// MaxGeneratedSets bounds the generated category.
	MaxGeneratedSets = 50

	generatedPrefix       = "AI:"
	maxGeneratedNameRunes = 30
	truncatedNameRunes    = 27
)

// ErrUnknownCategory is returned for a category that is not in the library.
var ErrUnknownCategory = errors.New("unknown category")

type libraryFile struct {
	Categories []models.Category `yaml:"categories"`
}

// Library is safe for concurrent use.
type Library struct {
	mu         sync.RWMutex
	categories []models.Category
	index      map[string]int
	generated  []models.ChordSet
}

// Load parses library YAML. Sets without a name are named after their chords.
func Load(data []byte) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse chord library: %w", err)
	}

	lib := &Library{index: make(map[string]int, len(file.Categories))}
	for _, cat := range file.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("chord library category without a name")
		}
		if name == GeneratedCategory {
			return nil, fmt.Errorf("category %q is reserved", name)
		}
		if _, dup := lib.index[name]; dup {
			return nil, fmt.Errorf("duplicate chord library category %q", name)
		}

		sets := make([]models.ChordSet, 0, len(cat.Sets))
		for _, set := range cat.Sets {
			if len(set.Chords) == 0 {
				continue
			}
			if set.Name == "" {
				set.Name = strings.Join(set.Chords, ", ")
			}
			sets = append(sets, set)
		}
		lib.index[name] = len(lib.categories)
		lib.categories = append(lib.categories, models.Category{Name: name, Sets: sets})
	}
	return lib, nil
}

// Default loads the library shipped with the binary.
func Default() (*Library, error) {
	return Load(embedded.ChordLibraryYAML)
}

// Categories lists category names in library order, the generated category first when it has sets.
func (l *Library) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.categories)+1)
	if len(l.generated) > 0 {
		names = append(names, GeneratedCategory)
	}
	for _, cat := range l.categories {
		names = append(names, cat.Name)
	}
	return names
}

// Category returns a copy of the sets in a category.
func (l *Library) Category(name string) ([]models.ChordSet, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if name == GeneratedCategory {
		if len(l.generated) == 0 {
			return nil, false
		}
		return cloneSets(l.generated), true
	}
	idx, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return cloneSets(l.categories[idx].Sets), true
}

// Set looks up a set by category and name.
func (l *Library) Set(category, name string) (models.ChordSet, bool) {
	sets, ok := l.Category(category)
	if !ok {
		return models.ChordSet{}, false
	}
	for _, set := range sets {
		if set.Name == name {
			return set, true
		}
	}
	return models.ChordSet{}, false
}

// AddGenerated stores a generated progression at the head of the generated category and
// returns the stored set. The oldest sets are dropped past MaxGeneratedSets.
func (l *Library) AddGenerated(description string, chords []string) models.ChordSet {
	set := models.ChordSet{
		Name:   GeneratedSetName(description),
		Chords: append([]string(nil), chords...),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.generated = append([]models.ChordSet{set}, l.generated...)
	if len(l.generated) > MaxGeneratedSets {
		l.generated = l.generated[:MaxGeneratedSets]
	}
	return set
}

// Stats counts what the library currently holds.
type Stats struct {
	Categories int `json:"categories"`
	Sets       int `json:"sets"`
	Generated  int `json:"generated"`
}

func (l *Library) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Stats{Categories: len(l.categories), Generated: len(l.generated)}
	for _, cat := range l.categories {
		stats.Sets += len(cat.Sets)
	}
	return stats
}

// GeneratedSetName names a generated set after its description, cut to 27 characters
// plus an ellipsis when longer than 30.
func GeneratedSetName(description string) string {
	runes := []rune(strings.TrimSpace(description))
	if len(runes) > maxGeneratedNameRunes {
		return generatedPrefix + " " + string(runes[:truncatedNameRunes]) + "..."
	}
	return generatedPrefix + " " + string(runes)
}

func cloneSets(sets []models.ChordSet) []models.ChordSet {
	out := make([]models.ChordSet, len(sets))
	for i, set := range sets {
		out[i] = models.ChordSet{Name: set.Name, Chords: append([]string(nil), set.Chords...)}
	}
	return out
}
