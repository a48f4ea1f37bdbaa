package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/llm"
	"github.com/Conceptual-Machines/chordpad-api/internal/metrics"
	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name        string
	output      string
	err         error
	lastRequest *llm.GenerationRequest
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(_ context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	p.lastRequest = request
	if p.err != nil {
		return nil, p.err
	}
	return &llm.GenerationResponse{
		RawOutput: p.output,
		Usage:     llm.Usage{InputTokens: 40, OutputTokens: 8, TotalTokens: 48},
	}, nil
}

// stubSource routes like the real factory: gpt- to openai, gemini- to gemini,
// anything else to gemini first.
type stubSource struct {
	providers map[string]llm.Provider
}

func (s *stubSource) GetProvider(_ context.Context, model, providerName string) (llm.Provider, error) {
	name := providerName
	if name == "" {
		switch {
		case strings.HasPrefix(model, "gpt-"):
			name = "openai"
		case strings.HasPrefix(model, "gemini-"):
			name = "gemini"
		case s.providers["gemini"] != nil:
			name = "gemini"
		default:
			name = "openai"
		}
	}
	if p, ok := s.providers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%s: %w", name, llm.ErrNoProvider)
}

func newTestService(t *testing.T, providers ...*stubProvider) (*ProgressionService, *library.Library, *metrics.Recorder) {
	t.Helper()
	lib, err := library.Default()
	require.NoError(t, err)

	source := &stubSource{providers: map[string]llm.Provider{}}
	for _, p := range providers {
		source.providers[p.name] = p
	}
	recorder := metrics.NewRecorder(nil)
	return NewProgressionService(source, lib, recorder, llm.DefaultGeminiModel, time.Second), lib, recorder
}

func TestGenerateStoresProgression(t *testing.T) {
	gemini := &stubProvider{name: "gemini", output: "```Amin, Fmaj, Cmaj, Gmaj```"}
	svc, lib, recorder := newTestService(t, gemini)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{
		Description: "sad song about rain",
		Key:         "A",
	})
	require.NoError(t, err)

	assert.Equal(t, "gemini", result.Provider)
	assert.Equal(t, "gemini-2.5-flash", result.Model)
	assert.Equal(t, models.ChordSet{Name: "AI: sad song about rain", Chords: []string{"Amin", "Fmaj", "Cmaj", "Gmaj"}}, result.Set)
	assert.Equal(t, 48, result.Usage["total_tokens"])
	assert.Empty(t, result.Unparsable)

	sets, ok := lib.Category(library.GeneratedCategory)
	require.True(t, ok)
	require.Len(t, sets, 1)
	assert.Equal(t, result.Set, sets[0])

	require.NotNil(t, gemini.lastRequest)
	assert.Nil(t, gemini.lastRequest.CFGGrammar)
	assert.NotEmpty(t, gemini.lastRequest.SystemPrompt)
	content, _ := gemini.lastRequest.InputArray[0]["content"].(string)
	assert.Contains(t, content, "sad song about rain")
	assert.Contains(t, content, "in the key of A")

	snap := recorder.Snapshot()
	assert.Equal(t, int64(1), snap.Generations)
	assert.Equal(t, int64(4), snap.GeneratedChords)
}

func TestGenerateDefaultsKeyToC(t *testing.T) {
	gemini := &stubProvider{name: "gemini", output: "C, G"}
	svc, _, _ := newTestService(t, gemini)

	_, err := svc.Generate(context.Background(), models.GenerationRequest{Description: "pop"})
	require.NoError(t, err)
	content, _ := gemini.lastRequest.InputArray[0]["content"].(string)
	assert.Contains(t, content, "in the key of C")
}

func TestGenerateOpenAIUsesGrammar(t *testing.T) {
	openai := &stubProvider{name: "openai", output: "Dmin7, G7, Cmaj7"}
	svc, _, _ := newTestService(t, openai)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{
		Description:   "jazz",
		Model:         "gpt-5-nano",
		ReasoningMode: "minimal",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-5-nano", result.Model)
	require.NotNil(t, openai.lastRequest.CFGGrammar)
	assert.Equal(t, llm.ChordProgressionToolName, openai.lastRequest.CFGGrammar.ToolName)
	assert.Equal(t, "minimal", openai.lastRequest.ReasoningMode)
}

func TestGenerateFallsBackToConfiguredProvider(t *testing.T) {
	openai := &stubProvider{name: "openai", output: "C, F, G"}
	svc, _, _ := newTestService(t, openai)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{Description: "folk"})
	require.NoError(t, err)
	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, llm.DefaultOpenAIModel, result.Model)
}

func TestGenerateExplicitProviderUsesItsDefaultModel(t *testing.T) {
	gemini := &stubProvider{name: "gemini", output: "C"}
	openai := &stubProvider{name: "openai", output: "G"}
	svc, _, _ := newTestService(t, gemini, openai)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{Description: "x", Provider: "openai"})
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultOpenAIModel, result.Model)
	assert.Nil(t, gemini.lastRequest)
}

func TestGenerateReportsUnparsableChords(t *testing.T) {
	gemini := &stubProvider{name: "gemini", output: "Cmaj7, Hmin, G7"}
	svc, _, _ := newTestService(t, gemini)

	result, err := svc.Generate(context.Background(), models.GenerationRequest{Description: "odd"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cmaj7", "Hmin", "G7"}, result.Set.Chords)
	assert.Equal(t, []string{"Hmin"}, result.Unparsable)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		providers []*stubProvider
		request   models.GenerationRequest
		target    error
	}{
		{
			name:      "empty description",
			providers: []*stubProvider{{name: "gemini", output: "C"}},
			request:   models.GenerationRequest{Description: "   "},
			target:    ErrInvalidRequest,
		},
		{
			name:      "unknown key",
			providers: []*stubProvider{{name: "gemini", output: "C"}},
			request:   models.GenerationRequest{Description: "x", Key: "H"},
			target:    ErrInvalidRequest,
		},
		{
			name:      "model not served by provider",
			providers: []*stubProvider{{name: "gemini", output: "C"}},
			request:   models.GenerationRequest{Description: "x", Model: "gpt-5-mini", Provider: "gemini"},
			target:    ErrInvalidRequest,
		},
		{
			name:    "no provider configured",
			request: models.GenerationRequest{Description: "x"},
			target:  llm.ErrNoProvider,
		},
		{
			name:      "requested provider missing",
			providers: []*stubProvider{{name: "gemini", output: "C"}},
			request:   models.GenerationRequest{Description: "x", Model: "gpt-5-mini"},
			target:    llm.ErrNoProvider,
		},
		{
			name:      "empty answer",
			providers: []*stubProvider{{name: "gemini", output: "``` , ```"}},
			request:   models.GenerationRequest{Description: "x"},
			target:    ErrEmptyProgression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, lib, _ := newTestService(t, tt.providers...)
			_, err := svc.Generate(context.Background(), tt.request)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)

			sets, _ := lib.Category(library.GeneratedCategory)
			assert.Empty(t, sets)
		})
	}
}

func TestGenerateProviderFailureIsRecorded(t *testing.T) {
	boom := errors.New("upstream unavailable")
	svc, _, recorder := newTestService(t, &stubProvider{name: "gemini", err: boom})

	_, err := svc.Generate(context.Background(), models.GenerationRequest{Description: "x"})
	assert.ErrorIs(t, err, boom)

	snap := recorder.Snapshot()
	assert.Equal(t, int64(1), snap.Generations)
	assert.Equal(t, int64(1), snap.GenerationErrors)
}
