package metrics

import (
	"context"
	"sync/atomic"
	"time"
)

// Generation describes one progression generation attempt.
type Generation struct {
	Provider        string
	Model           string
	Duration        time.Duration
	Success         bool
	ChordCount      int
	InputTokens     int
	OutputTokens    int
	ReasoningTokens int
	TotalTokens     int
}

// Snapshot is a point-in-time copy of the in-process counters.
type Snapshot struct {
	Requests         int64 `json:"requests"`
	ServerErrors     int64 `json:"server_errors"`
	Generations      int64 `json:"generations"`
	GenerationErrors int64 `json:"generation_errors"`
	GeneratedChords  int64 `json:"generated_chords"`
	GenerationTokens int64 `json:"generation_tokens"`
	AvgGenerationMS  int64 `json:"avg_generation_ms"`
}

// Recorder fans metrics out to Sentry and CloudWatch and keeps in-process
// counters for the metrics endpoint. A nil CloudWatch client is allowed.
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *Client

	requests         atomic.Int64
	serverErrors     atomic.Int64
	generations      atomic.Int64
	generationErrors atomic.Int64
	generatedChords  atomic.Int64
	generationTokens atomic.Int64
	generationMS     atomic.Int64
}

// NewRecorder creates a recorder sending to Sentry and, when given, CloudWatch
func NewRecorder(cloudwatch *Client) *Recorder {
	return &Recorder{
		sentry:     NewSentryMetrics(),
		cloudwatch: cloudwatch,
	}
}

// RecordAPIRequest records one handled HTTP request
func (r *Recorder) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	r.requests.Add(1)
	if statusCode >= httpStatusServerError {
		r.serverErrors.Add(1)
	}
	r.sentry.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	r.cloudwatch.RecordAPIRequest(endpoint, statusCode, duration)
}

// RecordGeneration records one progression generation attempt
func (r *Recorder) RecordGeneration(ctx context.Context, g Generation) {
	r.generations.Add(1)
	r.generationMS.Add(g.Duration.Milliseconds())
	if g.Success {
		r.generatedChords.Add(int64(g.ChordCount))
		r.generationTokens.Add(int64(g.TotalTokens))
	} else {
		r.generationErrors.Add(1)
	}
	r.sentry.RecordGeneration(ctx, g)
	r.cloudwatch.RecordGeneration(g)
}

// Snapshot returns the current counter values
func (r *Recorder) Snapshot() Snapshot {
	s := Snapshot{
		Requests:         r.requests.Load(),
		ServerErrors:     r.serverErrors.Load(),
		Generations:      r.generations.Load(),
		GenerationErrors: r.generationErrors.Load(),
		GeneratedChords:  r.generatedChords.Load(),
		GenerationTokens: r.generationTokens.Load(),
	}
	if s.Generations > 0 {
		s.AvgGenerationMS = r.generationMS.Load() / s.Generations
	}
	return s
}
