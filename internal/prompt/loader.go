package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/chordpad-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the main system prompt
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.SystemPromptTxt)), nil
}

// GetProgressionTemplate loads the progression request template
func (l *Loader) GetProgressionTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.ProgressionPromptTxt)), nil
}
