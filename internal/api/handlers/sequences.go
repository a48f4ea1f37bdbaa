package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/sequencer"
	"github.com/gin-gonic/gin"
)

// SequenceHandler builds playback timelines and note renders for step sequences
type SequenceHandler struct{}

func NewSequenceHandler() *SequenceHandler {
	return &SequenceHandler{}
}

type SequenceRequest struct {
	Chords []models.SequenceChord `json:"chords"`
	sequencer.VoicingOptions
}

type RenderRequest struct {
	SequenceRequest
	Template string `json:"template"`
	Velocity int    `json:"velocity"`
}

// Events returns the attack/release timeline of a sequence
func (h *SequenceHandler) Events(c *gin.Context) {
	var req SequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seq, err := sequencer.FromChords(req.Chords)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chords":      seq.Chords(),
		"events":      sequencer.Events(seq, req.VoicingOptions),
		"total_steps": sequencer.TotalSteps,
	})
}

// Render converts a sequence into MIDI note events using a rhythm template
func (h *SequenceHandler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seq, err := sequencer.FromChords(req.Chords)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rendered, err := sequencer.Render(seq, sequencer.RenderOptions{
		VoicingOptions: req.VoicingOptions,
		Template:       req.Template,
		Velocity:       req.Velocity,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rendered)
}

// Templates lists the rhythm templates Render accepts
func (h *SequenceHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": sequencer.RhythmTemplateNames()})
}
