package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/Conceptual-Machines/chordpad-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLangfuseDisabled(t *testing.T) {
	client := InitializeLangfuse(context.Background(), &config.Config{LangfuseEnabled: false})
	require.NotNil(t, client)
	assert.False(t, client.IsEnabled())
	assert.Same(t, client, GetClient())

	client = InitializeLangfuse(context.Background(), &config.Config{LangfuseEnabled: true})
	assert.False(t, client.IsEnabled(), "enabled without a secret key stays off")
}

func TestDisabledTraceIsNoop(t *testing.T) {
	var client *LangfuseClient
	assert.False(t, client.IsEnabled())

	trace := GetClient().StartTrace(context.Background(), "progression", map[string]interface{}{"key": "C"})
	assert.False(t, trace.Enabled())

	gen := trace.Generation("gemini.generate", nil)
	assert.NotPanics(t, func() {
		gen.Input("prompt")
		gen.Output([]string{"C", "G"})
		gen.Metadata(map[string]interface{}{"a": 1})
		gen.LogProgression("gemini-2.5-flash", "prompt", []string{"C", "G"}, TokenCounts{Input: 1})
		gen.Fail(errors.New("boom"))
		gen.Finish()
		trace.Finish()
	})
}
