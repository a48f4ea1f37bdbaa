package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// Available lists the providers that have an API key configured.
func (f *ProviderFactory) Available() []string {
	var names []string
	if f.geminiAPIKey != "" {
		names = append(names, providerNameGemini)
	}
	if f.openaiAPIKey != "" {
		names = append(names, providerNameOpenAI)
	}
	return names
}

// GetProvider returns the appropriate provider for the given model/provider name
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	// If provider is explicitly specified, use that
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}

	// Otherwise, infer from model name
	return f.getProviderByModel(ctx, model)
}

// getProviderByName creates a provider by explicit name
func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		return f.openai()
	case providerNameGemini:
		return f.gemini(ctx)
	default:
		return nil, fmt.Errorf("%w: %s (allowed: gemini, openai)", ErrUnknownProvider, providerName)
	}
}

// getProviderByModel infers provider from model name. Unknown or empty models
// go to Gemini when it is configured, else OpenAI.
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	switch {
	case strings.HasPrefix(modelLower, "gpt-"):
		return f.openai()
	case strings.HasPrefix(modelLower, "gemini-"):
		return f.gemini(ctx)
	case f.geminiAPIKey != "":
		return f.gemini(ctx)
	default:
		return f.openai()
	}
}

func (f *ProviderFactory) openai() (Provider, error) {
	if f.openaiAPIKey == "" {
		return nil, fmt.Errorf("openai API key not configured: %w", ErrNoProvider)
	}
	return NewOpenAIProvider(f.openaiAPIKey), nil
}

func (f *ProviderFactory) gemini(ctx context.Context) (Provider, error) {
	if f.geminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured: %w", ErrNoProvider)
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
