package models

// SequenceChord is a chord placed on the step grid
type SequenceChord struct {
	ID        string `json:"id"`
	ChordName string `json:"chordName"`
	Start     int    `json:"start"`    // First step, 0-63
	Duration  int    `json:"duration"` // Length in sixteenth steps
}

// Timeline event types
const (
	EventAttack  = "attack"
	EventRelease = "release"
	EventStop    = "stop"
)

// TimelineEvent is a scheduled playback action at a bar:beat:sixteenth position
type TimelineEvent struct {
	Time    string   `json:"time"`
	Step    int      `json:"step"`
	Type    string   `json:"type"`
	ChordID string   `json:"chordId,omitempty"`
	Notes   []string `json:"notes,omitempty"`
}
