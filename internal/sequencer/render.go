package sequencer

import (
	"fmt"
	"math"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
)

const (
	DefaultVelocity = 100
	beatsPerStep    = 1.0 / StepsPerBeat
	cycleBeats      = float64(BeatsPerBar)
)

// RenderOptions configures rendering a sequence to note events.
type RenderOptions struct {
	VoicingOptions
	Template string `json:"template"`
	Velocity int    `json:"velocity"`
}

// Render converts a sequence into MIDI note events, applying a rhythm template bar by bar
// from each chord's start. An empty template or SustainTemplate holds every chord.
func Render(seq Sequence, opts RenderOptions) (models.RenderedSequence, error) {
	templateName := opts.Template
	if templateName == "" {
		templateName = SustainTemplate
	}
	var tmpl RhythmTemplate
	if templateName != SustainTemplate {
		var ok bool
		if tmpl, ok = GetRhythmTemplate(templateName); !ok {
			return models.RenderedSequence{}, fmt.Errorf("unknown rhythm template: %s", templateName)
		}
	}

	velocity := opts.Velocity
	if velocity <= 0 {
		velocity = DefaultVelocity
	}
	velocity = clamp(velocity, 1, 127)

	out := models.RenderedSequence{Template: templateName, Notes: []models.NoteEvent{}}
	for _, c := range seq.chords {
		name := opts.ChordName(c.ChordName)
		midi := theory.MIDINumbers(theory.GetChordNoteStrings(name, opts.Octave))
		if len(midi) == 0 {
			continue
		}
		start := float64(c.Start) * beatsPerStep
		length := float64(c.Duration) * beatsPerStep
		out.Chords = append(out.Chords, models.ChordEvent{ChordSymbol: name, StartBeats: start, DurationBeats: length})

		if templateName == SustainTemplate {
			for _, note := range midi {
				out.Notes = append(out.Notes, models.NoteEvent{
					MidiNoteNumber: note,
					Velocity:       velocity,
					StartBeats:     start,
					DurationBeats:  length,
				})
			}
			continue
		}
		out.Notes = append(out.Notes, applyRhythmTemplate(midi, velocity, start, length, tmpl)...)
	}
	return out, nil
}

// applyRhythmTemplate repeats the template every bar from startBeat, dropping hits at or past
// the chord's end and trimming durations to the next hit.
func applyRhythmTemplate(chordNotes []int, velocity int, startBeat, length float64, tmpl RhythmTemplate) []models.NoteEvent {
	var noteEvents []models.NoteEvent
	endBeat := startBeat + length
	noteIndex := 0

	cycles := int(math.Ceil(length / cycleBeats))
	for r := 0; r < cycles; r++ {
		cycleStart := startBeat + float64(r)*cycleBeats

		for i, offset := range tmpl.Offsets {
			beatPos := cycleStart + offset
			if beatPos >= endBeat {
				break
			}

			// Apply accent to velocity
			accent := velocity
			if i < len(tmpl.Accents) {
				accent = int(float64(velocity) * tmpl.Accents[i])
			}

			// Calculate note duration based on articulation
			noteDuration := (cycleBeats / float64(len(tmpl.Offsets))) * tmpl.Articulation
			// Ensure note doesn't extend beyond next hit or chord end
			nextHit := cycleStart + cycleBeats
			if i+1 < len(tmpl.Offsets) {
				nextHit = cycleStart + tmpl.Offsets[i+1]
			}
			if limit := math.Min(nextHit, endBeat) - beatPos; noteDuration > limit {
				noteDuration = limit
			}

			if tmpl.Arpeggiate {
				noteEvents = append(noteEvents, models.NoteEvent{
					MidiNoteNumber: chordNotes[noteIndex%len(chordNotes)],
					Velocity:       accent,
					StartBeats:     beatPos,
					DurationBeats:  noteDuration,
				})
				noteIndex++
				continue
			}

			for _, midiNote := range chordNotes {
				noteEvents = append(noteEvents, models.NoteEvent{
					MidiNoteNumber: midiNote,
					Velocity:       accent,
					StartBeats:     beatPos,
					DurationBeats:  noteDuration,
				})
			}
		}
	}
	return noteEvents
}
