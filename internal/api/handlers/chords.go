package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// ChordHandler serves the chord theory endpoints
type ChordHandler struct{}

func NewChordHandler() *ChordHandler {
	return &ChordHandler{}
}

type ChordRequest struct {
	Chord  string `json:"chord" binding:"required"`
	Octave int    `json:"octave"`
}

type EditRequest struct {
	Chord string `json:"chord" binding:"required"`
	theory.ChordEdit
}

// Parse splits a chord symbol into root, quality, bass and inversion
func (h *ChordHandler) Parse(c *gin.Context) {
	var req ChordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := theory.ParseChord(req.Chord)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, theory.ErrNoMatch) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error(), "chord": req.Chord})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chord":       req.Chord,
		"parsed":      parsed,
		"name":        parsed.String(),
		"has_seventh": theory.HasSeventh(req.Chord),
	})
}

// Notes voices a chord as sampler note names and MIDI numbers
func (h *ChordHandler) Notes(c *gin.Context) {
	var req ChordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Octave < -maxOctaveOffset || req.Octave > maxOctaveOffset {
		c.JSON(http.StatusBadRequest, gin.H{"error": "octave must be between -4 and 4"})
		return
	}

	parsed, err := theory.ParseChord(req.Chord)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "chord": req.Chord})
		return
	}

	notes := theory.GetChordNoteStrings(req.Chord, req.Octave)
	c.JSON(http.StatusOK, gin.H{
		"chord":       req.Chord,
		"root":        parsed.Root,
		"notes":       notes,
		"midi":        theory.MIDINumbers(notes),
		"intervals":   theory.IntervalsFor(parsed.Quality).Intervals(),
		"has_seventh": theory.HasSeventh(req.Chord),
	})
}

// Edit applies a partial root, quality or inversion change to a chord
func (h *ChordHandler) Edit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Root != nil {
		if _, err := theory.PitchIndex(*req.Root); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Quality != nil {
		switch *req.Quality {
		case theory.QualityMajor, theory.QualityMinor, theory.QualityDiminished:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "quality must be one of maj, min, dim"})
			return
		}
	}
	if req.Inversion != nil && (*req.Inversion < 0 || *req.Inversion > theory.MaxInversion) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inversion must be between 0 and 3"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"original": req.Chord,
		"chord":    theory.UpdateChord(req.Chord, req.ChordEdit),
	})
}
