package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &GenerationResponse{}, nil
}

func TestProviderInterface(t *testing.T) {
	var provider Provider = &MockProvider{name: "mock"}
	assert.Equal(t, "mock", provider.Name())
}

func TestMockProviderGenerate(t *testing.T) {
	callCount := 0
	mock := &MockProvider{
		name: "test",
		generateFunc: func(_ context.Context, request *GenerationRequest) (*GenerationResponse, error) {
			callCount++
			require.Equal(t, "test-model", request.Model)
			return &GenerationResponse{RawOutput: "Dmin7, G7, Cmaj7"}, nil
		},
	}

	resp, err := mock.Generate(context.Background(), &GenerationRequest{Model: "test-model"})
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, []string{"Dmin7", "G7", "Cmaj7"}, ParseChordList(resp.RawOutput))
}

func TestUsageAsMap(t *testing.T) {
	usage := Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}
	m := usage.AsMap()
	assert.Equal(t, 10, m["input_tokens"])
	assert.Equal(t, 0, m["reasoning_tokens"])
	assert.Equal(t, 15, m["total_tokens"])
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, []map[string]any{{"role": "user", "content": "hi"}}, UserMessage("hi"))
}

func TestChordProgressionCFG(t *testing.T) {
	cfg := ChordProgressionCFG()
	assert.Equal(t, ChordProgressionToolName, cfg.ToolName)
	assert.Equal(t, "lark", cfg.Syntax)
	assert.Contains(t, cfg.Grammar, "start:")
	assert.Contains(t, cfg.Grammar, "CHORD:")
}
