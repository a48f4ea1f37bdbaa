package llm

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when the provider a request needs has no API key configured.
var ErrNoProvider = errors.New("no AI provider configured")

// ErrUnknownProvider is returned for a provider name the factory does not know.
var ErrUnknownProvider = errors.New("unknown provider")

// Provider defines the interface for LLM providers that write chord progressions.
type Provider interface {
	// Generate sends the prompt and returns the model's raw text plus token usage.
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model         string
	SystemPrompt  string
	InputArray    []map[string]any
	ReasoningMode string // OpenAI reasoning models only
	// CFG grammar constraining the output (OpenAI only, ignored by Gemini)
	CFGGrammar *CFGConfig
}

// CFGConfig contains context-free grammar configuration
type CFGConfig struct {
	ToolName    string // Name of the tool that will receive the constrained output
	Description string // Description of what the tool does
	Grammar     string // Lark grammar definition
	Syntax      string // "lark" or "regex" (default: "lark")
}

// Usage is the token accounting reported by a provider.
type Usage struct {
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	ReasoningTokens int `json:"reasoning_tokens,omitempty"`
	TotalTokens     int `json:"total_tokens"`
}

// AsMap flattens the usage for logging and tracing.
func (u Usage) AsMap() map[string]any {
	return map[string]any{
		"input_tokens":     u.InputTokens,
		"output_tokens":    u.OutputTokens,
		"reasoning_tokens": u.ReasoningTokens,
		"total_tokens":     u.TotalTokens,
	}
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string `json:"-"`
	Usage     Usage  `json:"usage"`
}

// UserMessage builds the single-message input array used for progression prompts.
func UserMessage(content string) []map[string]any {
	return []map[string]any{{"role": "user", "content": content}}
}
