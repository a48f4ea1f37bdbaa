package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type KeyOption struct {
	Key       string           `json:"key"`
	Label     string           `json:"label"`
	Signature theory.Signature `json:"signature"`
}

// Circle returns the relative minor, dominant and subdominant of a root
func Circle(c *gin.Context) {
	root := c.Param("root")
	if _, err := theory.PitchIndex(root); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, theory.RelativesOf(root))
}

// Keys lists the keys a progression can be transposed to
func Keys(c *gin.Context) {
	keys := make([]KeyOption, 0, len(theory.KeyOptions))
	for _, key := range theory.KeyOptions {
		keys = append(keys, KeyOption{
			Key:       key,
			Label:     theory.KeyLabel(key),
			Signature: theory.SignatureOf(key),
		})
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}
