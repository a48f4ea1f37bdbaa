package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Spans are dropped by the SDK when Sentry is not configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGeneration records a progression generation: tokens go on the enclosing
// transaction, timing and outcome on a child span.
func (m *SentryMetrics) RecordGeneration(ctx context.Context, g Generation) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.provider", g.Provider)
		transaction.SetTag("llm.model", g.Model)
		transaction.SetData("llm.total_tokens", g.TotalTokens)
		transaction.SetData("llm.input_tokens", g.InputTokens)
		transaction.SetData("llm.output_tokens", g.OutputTokens)
		transaction.SetData("llm.reasoning_tokens", g.ReasoningTokens)
	}

	span := sentry.StartSpan(ctx, "generation.request")
	defer span.Finish()

	span.SetTag("provider", g.Provider)
	span.SetTag("model", g.Model)
	span.SetTag("success", fmt.Sprintf("%t", g.Success))

	span.SetData("duration_ms", g.Duration.Milliseconds())
	span.SetData("chord_count", g.ChordCount)
	span.SetData("total_tokens", g.TotalTokens)

	if g.Success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Generation Request: %s/%s", g.Provider, g.Model)
}
