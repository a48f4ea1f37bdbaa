package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiProvider_Name(t *testing.T) {
	// We can't create a real client without an API key
	provider := &GeminiProvider{client: nil}
	assert.Equal(t, "gemini", provider.Name())
}

func TestGeminiProvider_BuildContents(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	tests := []struct {
		name       string
		inputArray []map[string]any
		wantRoles  []string
	}{
		{
			name:       "single user message",
			inputArray: UserMessage("write a progression"),
			wantRoles:  []string{"user"},
		},
		{
			name: "system role sent as user",
			inputArray: []map[string]any{
				{"role": "system", "content": "you write chords"},
			},
			wantRoles: []string{"user"},
		},
		{
			name: "assistant turns become model turns",
			inputArray: []map[string]any{
				{"role": "user", "content": "sad song"},
				{"role": "assistant", "content": "Amin, Fmaj, Cmaj, Gmaj"},
				{"role": "user", "content": "darker"},
			},
			wantRoles: []string{"user", "model", "user"},
		},
		{
			name: "invalid message skipped",
			inputArray: []map[string]any{
				{"role": "user", "content": "valid"},
				{"role": "user"},
				{"content": 42},
			},
			wantRoles: []string{"user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents := provider.buildGeminiContents(tt.inputArray)
			require.Len(t, contents, len(tt.wantRoles))
			for i, content := range contents {
				assert.Equal(t, tt.wantRoles[i], content.Role)
				assert.NotEmpty(t, content.Parts)
			}
		})
	}
}

func TestGeminiProvider_ProcessResponse(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "Amin, Fmaj, "},
				{Text: "Cmaj, Gmaj\n"},
			}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 12,
			TotalTokenCount:      132,
		},
	}

	resp, err := provider.processGeminiResponse(result)
	require.NoError(t, err)
	assert.Equal(t, "Amin, Fmaj, Cmaj, Gmaj", resp.RawOutput)
	assert.Equal(t, 120, resp.Usage.InputTokens)
	assert.Equal(t, 12, resp.Usage.OutputTokens)
	assert.Equal(t, 132, resp.Usage.TotalTokens)
}

func TestGeminiProvider_ProcessResponseErrors(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"empty text", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "  "}}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.processGeminiResponse(tt.result)
			assert.Error(t, err)
		})
	}
}

func TestGeminiProvider_GenerateWithoutClient(t *testing.T) {
	provider := &GeminiProvider{client: nil}
	_, err := provider.Generate(context.Background(), &GenerationRequest{InputArray: UserMessage("x")})
	assert.Error(t, err)
}

func TestNewGeminiProvider_InvalidKey(t *testing.T) {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx, "invalid-key")

	// Client creation does not call the API, so this may succeed
	if err != nil {
		assert.Error(t, err)
	} else {
		assert.NotNil(t, provider)
		assert.Equal(t, "gemini", provider.Name())
	}
}
