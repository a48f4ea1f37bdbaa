package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/chordpad-api/internal/llm"
	"github.com/Conceptual-Machines/chordpad-api/internal/logger"
	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProgressionGenerator is the part of the progression service the handler needs
type ProgressionGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

type GenerationHandler struct {
	generator ProgressionGenerator
}

func NewGenerationHandler(generator ProgressionGenerator) *GenerationHandler {
	return &GenerationHandler{generator: generator}
}

// Generate asks the configured AI provider for a progression and stores it in the library
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		status := generationErrorStatus(err)
		if status >= http.StatusInternalServerError {
			fields := logger.WithContext(c)
			fields["model"] = req.Model
			fields["provider"] = req.Provider
			logger.Error("Generation request failed", err, fields)
		}
		c.JSON(status, gin.H{
			"error":      err.Error(),
			"request_id": c.GetString(requestIDKey),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func generationErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, llm.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrNoProvider):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
