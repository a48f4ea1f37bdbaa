package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	cw, err := NewClient(context.Background(), "test", "CHORDPAD/API")
	require.NoError(t, err)
	assert.False(t, cw.Enabled())

	r := NewRecorder(cw)
	ctx := context.Background()

	r.RecordAPIRequest(ctx, "/api/v1/chords/notes", http.StatusOK, 3*time.Millisecond)
	r.RecordAPIRequest(ctx, "/api/v1/chords/parse", http.StatusUnprocessableEntity, time.Millisecond)
	r.RecordAPIRequest(ctx, "/api/v1/generations", http.StatusBadGateway, time.Second)

	r.RecordGeneration(ctx, Generation{
		Provider: "gemini", Model: "gemini-2.5-flash", Duration: 1200 * time.Millisecond,
		Success: true, ChordCount: 4, TotalTokens: 90,
	})
	r.RecordGeneration(ctx, Generation{
		Provider: "openai", Model: "gpt-5-mini", Duration: 800 * time.Millisecond,
	})

	assert.Equal(t, Snapshot{
		Requests:         3,
		ServerErrors:     1,
		Generations:      2,
		GenerationErrors: 1,
		GeneratedChords:  4,
		GenerationTokens: 90,
		AvgGenerationMS:  1000,
	}, r.Snapshot())
}

func TestRecorderWithoutCloudWatch(t *testing.T) {
	r := NewRecorder(nil)
	assert.NotPanics(t, func() {
		r.RecordAPIRequest(context.Background(), "/health", http.StatusOK, time.Millisecond)
		r.RecordGeneration(context.Background(), Generation{Success: true, ChordCount: 2})
	})
	assert.Equal(t, int64(0), r.Snapshot().AvgGenerationMS)
}

func TestBoolToString(t *testing.T) {
	assert.Equal(t, "true", boolToString(true))
	assert.Equal(t, "false", boolToString(false))
}
