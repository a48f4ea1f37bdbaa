package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// ProgressionHandler transposes and revoices chord progressions
type ProgressionHandler struct{}

func NewProgressionHandler() *ProgressionHandler {
	return &ProgressionHandler{}
}

type ProgressionRequest struct {
	Chords []string `json:"chords" binding:"required"`
	Key    string   `json:"key"`
}

// Transpose moves a progression into the requested key
func (h *ProgressionHandler) Transpose(c *gin.Context) {
	var req ProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	if _, err := theory.PitchIndex(req.Key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"key":       req.Key,
		"key_label": theory.KeyLabel(req.Key),
		"chords":    theory.TransposeProgression(req.Chords, req.Key),
	}
	if from, ok := theory.KeyOf(req.Chords); ok {
		response["from_key"] = from
	}
	c.JSON(http.StatusOK, response)
}

// Humanize picks inversions that keep voice movement between chords small
func (h *ProgressionHandler) Humanize(c *gin.Context) {
	var req ProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"chords": theory.HumanizeProgression(req.Chords)}
	if key, ok := theory.KeyOf(req.Chords); ok {
		response["key_of"] = key
	}
	c.JSON(http.StatusOK, response)
}
