package sequencer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
)

type recordingPort struct {
	calls     []string
	envelopes []Envelope
}

func (r *recordingPort) Attack(notes []string) {
	r.calls = append(r.calls, "attack "+strings.Join(notes, " "))
}

func (r *recordingPort) Release(notes []string) {
	r.calls = append(r.calls, "release "+strings.Join(notes, " "))
}

func (r *recordingPort) SetEnvelope(env Envelope) {
	r.envelopes = append(r.envelopes, env)
}

func TestDispatch(t *testing.T) {
	port := &recordingPort{}
	Dispatch(port, models.TimelineEvent{Type: models.EventAttack, Notes: []string{"C4", "E4"}})
	Dispatch(port, models.TimelineEvent{Type: models.EventRelease, Notes: []string{"C4", "E4"}})
	Dispatch(port, models.TimelineEvent{Type: models.EventStop})
	Dispatch(port, models.TimelineEvent{Type: models.EventAttack})

	assert.Equal(t, []string{"attack C4 E4", "release C4 E4"}, port.calls)
	assert.Equal(t, []Envelope{SequencerEnvelope}, port.envelopes)
}

func TestDispatchAll(t *testing.T) {
	seq, err := FromChords([]models.SequenceChord{
		{ChordName: "Cmaj", Start: 0, Duration: 8},
		{ChordName: "Gmaj", Start: 8, Duration: 8},
	})
	require.NoError(t, err)

	port := &recordingPort{}
	DispatchAll(port, Events(seq, VoicingOptions{}))
	assert.Equal(t, []string{
		"attack C4 E4 G4",
		"release C4 E4 G4",
		"attack G4 B4 D5",
		"release G4 B4 D5",
	}, port.calls)
}
