package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProvider(t *testing.T) {
	provider := NewOpenAIProvider("test-api-key")
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Name())
	assert.NotNil(t, provider.client)
	assert.Equal(t, openAIResponsesURL, provider.responsesURL)
}

func TestOpenAIProvider_BuildRequestParams(t *testing.T) {
	provider := NewOpenAIProvider("test-key")

	tests := []struct {
		name    string
		request *GenerationRequest
		checks  func(t *testing.T, params responses.ResponseNewParams)
	}{
		{
			name: "basic request with user message",
			request: &GenerationRequest{
				Model:        "gpt-5-mini",
				SystemPrompt: "test system prompt",
				InputArray:   UserMessage("jazzy ballad"),
			},
			checks: func(t *testing.T, params responses.ResponseNewParams) {
				t.Helper()
				assert.Equal(t, "gpt-5-mini", params.Model)
				assert.Equal(t, "test system prompt", params.Instructions.Value)
				assert.Len(t, params.Input.OfInputItemList, 1)
				assert.Equal(t, responses.ReasoningEffortLow, params.Reasoning.Effort)
			},
		},
		{
			name: "reasoning mode honoured for gpt-5",
			request: &GenerationRequest{
				Model:         "gpt-5-nano",
				ReasoningMode: "high",
				InputArray:    UserMessage("x"),
			},
			checks: func(t *testing.T, params responses.ResponseNewParams) {
				t.Helper()
				assert.Equal(t, responses.ReasoningEffortHigh, params.Reasoning.Effort)
			},
		},
		{
			name: "no reasoning for older models",
			request: &GenerationRequest{
				Model:         "gpt-4.1-mini",
				ReasoningMode: "high",
				InputArray:    UserMessage("x"),
			},
			checks: func(t *testing.T, params responses.ResponseNewParams) {
				t.Helper()
				assert.Empty(t, params.Reasoning.Effort)
			},
		},
		{
			name: "invalid items skipped",
			request: &GenerationRequest{
				Model: "gpt-5-mini",
				InputArray: []map[string]any{
					{"role": "developer", "content": "dev message"},
					{"role": "user"},
				},
			},
			checks: func(t *testing.T, params responses.ResponseNewParams) {
				t.Helper()
				assert.Len(t, params.Input.OfInputItemList, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checks(t, provider.buildRequestParams(tt.request))
		})
	}
}

func TestOpenAIProvider_GenerateWithCFG(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"output": [
				{"type": "reasoning", "id": "rs_1"},
				{"type": "custom_tool_call", "name": "chord_progression", "input": " Amin7, D7, Gmaj7, Cmaj7 "}
			],
			"usage": {
				"input_tokens": 50,
				"output_tokens": 10,
				"total_tokens": 60,
				"output_tokens_details": {"reasoning_tokens": 4}
			}
		}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("test-key")
	provider.responsesURL = server.URL

	resp, err := provider.Generate(context.Background(), &GenerationRequest{
		Model:        "gpt-5-mini",
		SystemPrompt: "system",
		InputArray:   UserMessage("a warm jazz turnaround"),
		CFGGrammar:   ChordProgressionCFG(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Amin7, D7, Gmaj7, Cmaj7", resp.RawOutput)
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 10, ReasoningTokens: 4, TotalTokens: 60}, resp.Usage)

	assert.Equal(t, "gpt-5-mini", received["model"])
	assert.Equal(t, false, received["parallel_tool_calls"])
	tools, ok := received["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, tools, 1)
}

func TestOpenAIProvider_GenerateWithCFGErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusTooManyRequests, `{"error": {"message": "rate limited"}}`},
		{"no tool call", http.StatusOK, `{"output": [{"type": "message", "content": []}]}`},
		{"other tool called", http.StatusOK, `{"output": [{"type": "custom_tool_call", "name": "other", "input": "C"}]}`},
		{"invalid json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := NewOpenAIProvider("test-key")
			provider.responsesURL = server.URL

			_, err := provider.Generate(context.Background(), &GenerationRequest{
				Model:      "gpt-5-mini",
				InputArray: UserMessage("x"),
				CFGGrammar: ChordProgressionCFG(),
			})
			assert.Error(t, err)
		})
	}
}

func TestUsageFromRawResponse(t *testing.T) {
	assert.Equal(t, Usage{}, usageFromRawResponse(map[string]any{}))
	assert.Equal(t, Usage{InputTokens: 3, TotalTokens: 3}, usageFromRawResponse(map[string]any{
		"usage": map[string]any{"input_tokens": float64(3), "total_tokens": float64(3)},
	}))
}

func TestCleanTextOutput(t *testing.T) {
	assert.Equal(t, "C, G", cleanTextOutput("```text\nC, G\n```"))
	assert.Equal(t, "C, G", cleanTextOutput("  C, G  "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
