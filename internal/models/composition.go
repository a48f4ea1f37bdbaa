package models

// ChordSet is a named progression in the chord library
type ChordSet struct {
	Name   string   `json:"name" yaml:"name"`
	Chords []string `json:"chords" yaml:"chords"`
}

// Category groups chord sets under a genre or mood heading
type Category struct {
	Name string     `json:"name" yaml:"name"`
	Sets []ChordSet `json:"sets" yaml:"sets"`
}

// GenerationRequest wraps the user's progression generation parameters
type GenerationRequest struct {
	Description string `json:"description" binding:"required"`
	Key         string `json:"key"`
	Model       string `json:"model,omitempty"`    // Optional override of the default model
	Provider    string `json:"provider,omitempty"` // Optional provider override (gemini, openai)
	// Reasoning effort for OpenAI reasoning models (minimal, low, medium, high)
	ReasoningMode string `json:"reasoning_mode,omitempty"`
}

// GenerationResult is the outcome of an AI progression generation
type GenerationResult struct {
	Set      ChordSet       `json:"set"`
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
	Usage    map[string]any `json:"usage,omitempty"`
	// Chords the model returned that the theory engine cannot voice
	Unparsable []string `json:"unparsable,omitempty"`
}
