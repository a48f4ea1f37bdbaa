package sequencer

import (
	"fmt"
	"sort"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
)

// VoicingOptions selects how sequence chords are voiced.
type VoicingOptions struct {
	Octave    int  `json:"octave"`
	Voicing   bool `json:"voicing"`
	Inversion int  `json:"inversion"`
}

// ChordName returns the name actually voiced for a chord under the options.
func (o VoicingOptions) ChordName(name string) string {
	if !o.Voicing {
		return name
	}
	return library.ApplyInversion([]string{name}, o.Inversion)[0]
}

// Notes returns the sampler notes for a chord under the options.
func (o VoicingOptions) Notes(name string) []string {
	return theory.GetChordNoteStrings(o.ChordName(name), o.Octave)
}

// StepTime formats a step as a bar:beat:sixteenth transport position.
func StepTime(step int) string {
	return fmt.Sprintf("%d:%d:%d", step/StepsPerBar, (step%StepsPerBar)/StepsPerBeat, step%StepsPerBeat)
}

// Events builds the looped playback timeline: an attack at each chord's start, a release at
// its end and a final stop at the loop end. Chords without notes are skipped. Events are
// ordered by step with releases ahead of attacks on the same step.
func Events(seq Sequence, opts VoicingOptions) []models.TimelineEvent {
	events := make([]models.TimelineEvent, 0, seq.Len()*2+1)
	for _, c := range seq.chords {
		notes := opts.Notes(c.ChordName)
		if len(notes) == 0 {
			continue
		}
		end := c.Start + c.Duration
		events = append(events,
			models.TimelineEvent{Time: StepTime(c.Start), Step: c.Start, Type: models.EventAttack, ChordID: c.ID, Notes: notes},
			models.TimelineEvent{Time: StepTime(end), Step: end, Type: models.EventRelease, ChordID: c.ID, Notes: notes},
		)
	}
	events = append(events, models.TimelineEvent{Time: StepTime(TotalSteps), Step: TotalSteps, Type: models.EventStop})

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Step != events[j].Step {
			return events[i].Step < events[j].Step
		}
		return eventRank(events[i].Type) < eventRank(events[j].Type)
	})
	return events
}

func eventRank(eventType string) int {
	switch eventType {
	case models.EventRelease:
		return 0
	case models.EventAttack:
		return 1
	default:
		return 2
	}
}
