// Package sequencer models the four-bar step sequencer: chord placement on a grid of
// sixteenth steps, the attack/release timeline and rendering to note events.
package sequencer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
)

// Grid dimensions, 4 bars of 4/4 in sixteenth steps
const (
	StepsPerBeat    = 4
	BeatsPerBar     = 4
	Bars            = 4
	StepsPerBar     = StepsPerBeat * BeatsPerBar
	TotalSteps      = StepsPerBar * Bars
	DefaultDuration = 8 // half note
	MinDuration     = 1
)

var (
	ErrChordNotFound = errors.New("sequence chord not found")
	ErrOutOfRange    = errors.New("step out of range")
	ErrEmptyChord    = errors.New("chord name is required")
)

// Sequence is an immutable list of placed chords. Every operation returns a new Sequence.
type Sequence struct {
	chords []models.SequenceChord
}

// FromChords validates chords received from a client. Missing IDs are assigned, missing
// durations take DefaultDuration and durations are clamped to the grid.
func FromChords(chords []models.SequenceChord) (Sequence, error) {
	out := make([]models.SequenceChord, 0, len(chords))
	for i, c := range chords {
		c.ChordName = strings.TrimSpace(c.ChordName)
		if c.ChordName == "" {
			return Sequence{}, fmt.Errorf("chord %d: %w", i, ErrEmptyChord)
		}
		if c.Start < 0 || c.Start >= TotalSteps {
			return Sequence{}, fmt.Errorf("chord %d start %d: %w", i, c.Start, ErrOutOfRange)
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.Duration <= 0 {
			c.Duration = DefaultDuration
		}
		c.Duration = clampDuration(c.Start, c.Duration)
		out = append(out, c)
	}
	return Sequence{chords: out}, nil
}

// Chords returns a copy of the placed chords in insertion order.
func (s Sequence) Chords() []models.SequenceChord {
	return append([]models.SequenceChord(nil), s.chords...)
}

// Len returns the number of placed chords.
func (s Sequence) Len() int {
	return len(s.chords)
}

// Add places a chord at start. A non-positive duration takes DefaultDuration; the duration is
// clamped so the chord ends on the grid.
func (s Sequence) Add(chordName string, start, duration int) (Sequence, models.SequenceChord, error) {
	chordName = strings.TrimSpace(chordName)
	if chordName == "" {
		return s, models.SequenceChord{}, ErrEmptyChord
	}
	if start < 0 || start >= TotalSteps {
		return s, models.SequenceChord{}, fmt.Errorf("start %d: %w", start, ErrOutOfRange)
	}
	if duration <= 0 {
		duration = DefaultDuration
	}

	chord := models.SequenceChord{
		ID:        uuid.New().String(),
		ChordName: chordName,
		Start:     start,
		Duration:  clampDuration(start, duration),
	}
	next := s.Chords()
	next = append(next, chord)
	return Sequence{chords: next}, chord, nil
}

// Move shifts a chord to start, keeping its duration and keeping it on the grid.
func (s Sequence) Move(id string, start int) (Sequence, error) {
	return s.update(id, func(c *models.SequenceChord) {
		c.Start = clamp(start, 0, TotalSteps-c.Duration)
	})
}

// Resize changes a chord's duration, clamped between MinDuration and the grid end.
func (s Sequence) Resize(id string, duration int) (Sequence, error) {
	return s.update(id, func(c *models.SequenceChord) {
		c.Duration = clamp(duration, MinDuration, TotalSteps-c.Start)
	})
}

// Rename replaces the chord played by a placed chord.
func (s Sequence) Rename(id, chordName string) (Sequence, error) {
	chordName = strings.TrimSpace(chordName)
	if chordName == "" {
		return s, ErrEmptyChord
	}
	return s.update(id, func(c *models.SequenceChord) {
		c.ChordName = chordName
	})
}

// Remove deletes a placed chord.
func (s Sequence) Remove(id string) (Sequence, error) {
	next := make([]models.SequenceChord, 0, len(s.chords))
	found := false
	for _, c := range s.chords {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		return s, fmt.Errorf("%w: %s", ErrChordNotFound, id)
	}
	return Sequence{chords: next}, nil
}

// Clear returns an empty sequence.
func (s Sequence) Clear() Sequence {
	return Sequence{}
}

func (s Sequence) update(id string, apply func(*models.SequenceChord)) (Sequence, error) {
	next := s.Chords()
	for i := range next {
		if next[i].ID == id {
			apply(&next[i])
			return Sequence{chords: next}, nil
		}
	}
	return s, fmt.Errorf("%w: %s", ErrChordNotFound, id)
}

func clampDuration(start, duration int) int {
	return clamp(duration, MinDuration, TotalSteps-start)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
