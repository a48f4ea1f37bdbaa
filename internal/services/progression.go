package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/llm"
	"github.com/Conceptual-Machines/chordpad-api/internal/logger"
	"github.com/Conceptual-Machines/chordpad-api/internal/metrics"
	"github.com/Conceptual-Machines/chordpad-api/internal/models"
	"github.com/Conceptual-Machines/chordpad-api/internal/observability"
	"github.com/Conceptual-Machines/chordpad-api/internal/prompt"
	"github.com/Conceptual-Machines/chordpad-api/internal/theory"
)

var (
	// ErrInvalidRequest marks generation input the caller must fix
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrEmptyProgression is returned when the model answer holds no chords
	ErrEmptyProgression = errors.New("model returned no chords")
)

// ProviderSource resolves the provider serving a model or provider name
type ProviderSource interface {
	GetProvider(ctx context.Context, model, providerName string) (llm.Provider, error)
}

// ProgressionService generates chord progressions from text descriptions and
// stores them in the library's generated category.
type ProgressionService struct {
	providers    ProviderSource
	prompts      *prompt.Builder
	library      *library.Library
	metrics      *metrics.Recorder
	defaultModel string
	timeout      time.Duration
}

// NewProgressionService creates a progression service. recorder may be nil.
func NewProgressionService(
	providers ProviderSource,
	lib *library.Library,
	recorder *metrics.Recorder,
	defaultModel string,
	timeout time.Duration,
) *ProgressionService {
	if recorder == nil {
		recorder = metrics.NewRecorder(nil)
	}
	return &ProgressionService{
		providers:    providers,
		prompts:      prompt.NewPromptBuilder(),
		library:      lib,
		metrics:      recorder,
		defaultModel: defaultModel,
		timeout:      timeout,
	}
}

// Generate asks the model for a progression matching the description and key,
// adds it to the library and returns it.
func (s *ProgressionService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		key = prompt.DefaultKey
	}
	if _, err := theory.PitchIndex(key); err != nil {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidRequest, req.Key)
	}

	provider, model, err := s.resolveProvider(ctx, req.Model, req.Provider)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := s.prompts.BuildSystemPrompt()
	if err != nil {
		return nil, err
	}
	userPrompt, err := s.prompts.BuildProgressionPrompt(description, key)
	if err != nil {
		return nil, err
	}

	request := &llm.GenerationRequest{
		Model:         model,
		SystemPrompt:  systemPrompt,
		InputArray:    llm.UserMessage(userPrompt),
		ReasoningMode: req.ReasoningMode,
	}
	if provider.Name() == "openai" {
		request.CFGGrammar = llm.ChordProgressionCFG()
	}

	trace := observability.GetClient().StartTrace(ctx, "chord_progression", map[string]interface{}{
		"key":      key,
		"provider": provider.Name(),
	})
	defer trace.Finish()
	generation := trace.Generation(provider.Name()+".generate", map[string]interface{}{"model": model})
	defer generation.Finish()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	startTime := time.Now()
	resp, err := provider.Generate(callCtx, request)
	duration := time.Since(startTime)

	sample := metrics.Generation{Provider: provider.Name(), Model: model, Duration: duration}
	if err != nil {
		generation.Fail(err)
		s.metrics.RecordGeneration(ctx, sample)
		logger.Error("Progression generation failed", err, logger.Fields{"provider": provider.Name(), "model": model})
		return nil, err
	}

	chords := llm.ParseChordList(resp.RawOutput)
	if len(chords) == 0 {
		generation.Fail(ErrEmptyProgression)
		s.metrics.RecordGeneration(ctx, sample)
		return nil, ErrEmptyProgression
	}

	var unparsable []string
	for _, chord := range chords {
		if _, err := theory.ParseChord(chord); err != nil {
			unparsable = append(unparsable, chord)
		}
	}
	if len(unparsable) > 0 {
		logger.Warn("Generated progression contains unparsable chords", logger.Fields{
			"model":      model,
			"unparsable": strings.Join(unparsable, ", "),
		})
	}

	set := s.library.AddGenerated(description, chords)

	generation.LogProgression(model, userPrompt, chords, observability.TokenCounts{
		Input:     resp.Usage.InputTokens,
		Output:    resp.Usage.OutputTokens,
		Reasoning: resp.Usage.ReasoningTokens,
		Total:     resp.Usage.TotalTokens,
	})

	sample.Success = true
	sample.ChordCount = len(chords)
	sample.InputTokens = resp.Usage.InputTokens
	sample.OutputTokens = resp.Usage.OutputTokens
	sample.ReasoningTokens = resp.Usage.ReasoningTokens
	sample.TotalTokens = resp.Usage.TotalTokens
	s.metrics.RecordGeneration(ctx, sample)

	usage := resp.Usage.AsMap()
	logger.LogGenerationRequest(ctx, provider.Name(), model, duration, len(chords), usage, nil)

	return &models.GenerationResult{
		Set:        set,
		Provider:   provider.Name(),
		Model:      model,
		Usage:      usage,
		Unparsable: unparsable,
	}, nil
}

// resolveProvider picks the provider and model for a request. Without an
// explicit model or provider the configured default model is tried first; when
// its provider has no key, whichever provider is configured serves the request
// with that provider's default model.
func (s *ProgressionService) resolveProvider(ctx context.Context, model, providerName string) (llm.Provider, string, error) {
	requested := model
	if model == "" && providerName == "" {
		model = s.defaultModel
	}

	provider, err := s.providers.GetProvider(ctx, model, providerName)
	if err != nil && requested == "" && providerName == "" && errors.Is(err, llm.ErrNoProvider) {
		model = ""
		provider, err = s.providers.GetProvider(ctx, "", "")
	}
	if err != nil {
		return nil, "", err
	}

	if model == "" || !servesModel(provider.Name(), model) {
		if requested != "" {
			return nil, "", fmt.Errorf("%w: model %s is not served by %s", ErrInvalidRequest, requested, provider.Name())
		}
		model = defaultModelFor(provider.Name())
	}
	return provider, model, nil
}

func servesModel(providerName, model string) bool {
	switch providerName {
	case "openai":
		return strings.HasPrefix(model, "gpt-")
	case "gemini":
		return strings.HasPrefix(model, "gemini-")
	default:
		return true
	}
}

func defaultModelFor(providerName string) string {
	if providerName == "openai" {
		return llm.DefaultOpenAIModel
	}
	return llm.DefaultGeminiModel
}
