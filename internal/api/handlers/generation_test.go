package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Conceptual-Machines/chordpad-api/internal/llm"
	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	result *models.GenerationResult
	err    error
	got    models.GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	s.got = req
	return s.result, s.err
}

func newGenerationRouter(generator ProgressionGenerator) *gin.Engine {
	h := NewGenerationHandler(generator)
	router := gin.New()
	router.POST("/generations", h.Generate)
	return router
}

func TestGenerationHandler_Generate(t *testing.T) {
	generator := &stubGenerator{result: &models.GenerationResult{
		Set:      models.ChordSet{Name: "AI: rainy morning", Chords: []string{"Amin7", "Dmin7", "G7", "Cmaj7"}},
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
	}}
	router := newGenerationRouter(generator)

	w := performRequest(t, router, http.MethodPost, "/generations", gin.H{
		"description": "rainy morning",
		"key":         "C",
		"model":       "gemini-2.5-flash",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rainy morning", generator.got.Description)
	assert.Equal(t, "C", generator.got.Key)

	body := decode(t, w)
	assert.Equal(t, "gemini", body["provider"])
	set := body["set"].(map[string]any)
	assert.Equal(t, []any{"Amin7", "Dmin7", "G7", "Cmaj7"}, set["chords"])
}

func TestGenerationHandler_MissingDescription(t *testing.T) {
	generator := &stubGenerator{}
	w := performRequest(t, newGenerationRouter(generator), http.MethodPost, "/generations", gin.H{"key": "C"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, generator.got.Description, "generator must not be called")
}

func TestGenerationHandler_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid request", fmt.Errorf("%w: unknown key", services.ErrInvalidRequest), http.StatusBadRequest},
		{"unknown provider", fmt.Errorf("%w: anthropic", llm.ErrUnknownProvider), http.StatusBadRequest},
		{"no provider", fmt.Errorf("gemini API key not configured: %w", llm.ErrNoProvider), http.StatusServiceUnavailable},
		{"timeout", fmt.Errorf("gemini request failed: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"empty answer", services.ErrEmptyProgression, http.StatusBadGateway},
		{"provider failure", errors.New("rate limited"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newGenerationRouter(&stubGenerator{err: tt.err})
			w := performRequest(t, router, http.MethodPost, "/generations", gin.H{"description": "x"})
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode(t, w)["error"], tt.err.Error())
		})
	}
}
