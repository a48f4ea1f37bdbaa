package prompt

import (
	"fmt"
	"strings"
)

// DefaultKey is used when a progression request names no key
const DefaultKey = "C"

// Template placeholders
const (
	placeholderDescription = "{{description}}"
	placeholderKey         = "{{key}}"
)

// Builder builds prompts for progression generation
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildSystemPrompt combines the system prompt with the chord symbol reference
func (b *Builder) BuildSystemPrompt() (string, error) {
	system, err := b.loader.GetSystemPrompt()
	if err != nil {
		return "", fmt.Errorf("failed to load system prompt: %w", err)
	}
	return strings.Join([]string{system, chordSymbolReference}, "\n\n"), nil
}

// BuildProgressionPrompt fills the progression template with the description and key
func (b *Builder) BuildProgressionPrompt(description, key string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("description is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultKey
	}

	tmpl, err := b.loader.GetProgressionTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load progression template: %w", err)
	}

	// Quotes would close the quoted description in the template
	description = strings.ReplaceAll(description, `"`, "'")

	replacer := strings.NewReplacer(placeholderDescription, description, placeholderKey, key)
	return replacer.Replace(tmpl), nil
}
