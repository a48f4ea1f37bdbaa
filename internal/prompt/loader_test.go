package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptLoader(t *testing.T) {
	loader := NewPromptLoader()
	if loader == nil {
		t.Fatal("NewPromptLoader() returned nil")
	}
}

func TestGetSystemPrompt(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetSystemPrompt()

	if err != nil {
		t.Fatalf("GetSystemPrompt() returned error: %v", err)
	}

	if content == "" {
		t.Error("GetSystemPrompt() returned empty string")
	}

	if !strings.Contains(content, "harmony assistant") {
		t.Error("GetSystemPrompt() does not contain expected content")
	}

	// Ensure whitespace is trimmed
	if strings.HasPrefix(content, "\n") || strings.HasSuffix(content, "\n") {
		t.Error("GetSystemPrompt() was not trimmed")
	}
}

func TestGetProgressionTemplate(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetProgressionTemplate()

	if err != nil {
		t.Fatalf("GetProgressionTemplate() returned error: %v", err)
	}

	for _, placeholder := range []string{placeholderDescription, placeholderKey} {
		if !strings.Contains(content, placeholder) {
			t.Errorf("GetProgressionTemplate() missing placeholder %s", placeholder)
		}
	}

	if !strings.Contains(content, "Return ONLY a comma-separated list") {
		t.Error("GetProgressionTemplate() does not contain the output instruction")
	}
}
