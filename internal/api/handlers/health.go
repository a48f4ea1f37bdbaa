package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	providers []string
	library   *library.Library
}

// NewHealthHandler creates a health handler reporting the configured AI providers
func NewHealthHandler(providers []string, lib *library.Library) *HealthHandler {
	if providers == nil {
		providers = []string{}
	}
	return &HealthHandler{providers: providers, library: lib}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	generation := "disabled"
	if len(h.providers) > 0 {
		generation = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"generation": gin.H{
			"status":    generation,
			"providers": h.providers,
		},
		"library": gin.H{
			"categories": len(h.library.Categories()),
		},
	})
}
