package sequencer

import "github.com/Conceptual-Machines/chordpad-api/internal/models"

// Envelope is an ADSR shape in seconds, sustain as a 0-1 level.
type Envelope struct {
	Attack  float64 `json:"attack"`
	Decay   float64 `json:"decay"`
	Sustain float64 `json:"sustain"`
	Release float64 `json:"release"`
}

// Envelope presets for the three ways chords are played.
var (
	// PadEnvelope starts and stops instantly while a pad is held.
	PadEnvelope = Envelope{Attack: 0.005, Sustain: 1}
	// ManualEnvelope leaves a short tail for clicked chords and previews.
	ManualEnvelope = Envelope{Attack: 0.005, Sustain: 1, Release: 0.1}
	// SequencerEnvelope is just long enough to avoid clicks between steps.
	SequencerEnvelope = Envelope{Attack: 0.005, Sustain: 1, Release: 0.05}
)

// PlaybackPort is implemented by whatever produces sound: a sampler, a MIDI bridge or a test recorder.
type PlaybackPort interface {
	Attack(notes []string)
	Release(notes []string)
	SetEnvelope(env Envelope)
}

// Dispatch maps a timeline event onto a playback port. Stop events and events without notes
// produce no sound.
func Dispatch(port PlaybackPort, event models.TimelineEvent) {
	if len(event.Notes) == 0 {
		return
	}
	switch event.Type {
	case models.EventAttack:
		port.SetEnvelope(SequencerEnvelope)
		port.Attack(event.Notes)
	case models.EventRelease:
		port.Release(event.Notes)
	}
}

// DispatchAll plays a whole timeline in order, ignoring timing.
func DispatchAll(port PlaybackPort, events []models.TimelineEvent) {
	for _, ev := range events {
		Dispatch(port, ev)
	}
}
