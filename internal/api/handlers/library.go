package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// LibraryHandler serves the chord-set catalogue
type LibraryHandler struct {
	library *library.Library
}

func NewLibraryHandler(lib *library.Library) *LibraryHandler {
	return &LibraryHandler{library: lib}
}

// ListCategories returns every category name, the generated category first
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.library.Categories()})
}

// GetCategory returns a category's sets, optionally transposed with ?key= and
// revoiced with ?inversion=
func (h *LibraryHandler) GetCategory(c *gin.Context) {
	opts, err := DisplayOptionsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := c.Param("category")
	sets, err := h.library.Display(category, opts)
	if err != nil {
		if errors.Is(err, library.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"key":      opts.Key,
		"sets":     sets,
	})
}

// ListGenerated returns the progressions generated since startup, newest first
func (h *LibraryHandler) ListGenerated(c *gin.Context) {
	sets, ok := h.library.Category(library.GeneratedCategory)
	if !ok {
		sets = []models.ChordSet{}
	}
	c.JSON(http.StatusOK, gin.H{"sets": sets})
}

// DisplayOptionsFromQuery reads the key and inversion query parameters. Voicing is
// applied only when inversion is given.
func DisplayOptionsFromQuery(c *gin.Context) (library.DisplayOptions, error) {
	var opts library.DisplayOptions

	if key := c.Query("key"); key != "" {
		if _, err := theory.PitchIndex(key); err != nil {
			return opts, err
		}
		opts.Key = key
	}

	if raw, ok := c.GetQuery("inversion"); ok {
		inversion, err := strconv.Atoi(raw)
		if err != nil || inversion < 0 || inversion > theory.MaxInversion {
			return opts, errors.New("inversion must be between 0 and 3")
		}
		opts.Voicing = true
		opts.Inversion = inversion
	}
	return opts, nil
}
