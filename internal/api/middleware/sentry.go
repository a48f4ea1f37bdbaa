package middleware

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/chordpad-api/internal/logger"
	"github.com/Conceptual-Machines/chordpad-api/internal/metrics"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-ID"
	requestIDKey       = "request_id"
	unmatchedRoute     = "unmatched"
	sentryFlushTimeout = 2 * time.Second
)

// routeOf returns the registered route pattern, not the concrete path
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

// RequestTracking adds request ID and logging to all requests and records
// request metrics against the matched route
func RequestTracking(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Reuse an upstream request ID when the client sends a valid one
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Scope().SetTag("request_id", requestID)
			hub.Scope().SetTag("route", routeOf(c))
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		route := routeOf(c)

		fields := logger.Fields{
			"request_id":  requestID,
			"duration_ms": duration.Milliseconds(),
			"status_code": status,
			"method":      c.Request.Method,
			"route":       route,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed with server error", nil, fields)
		case status >= http.StatusBadRequest:
			logger.Warn("Request failed with client error", fields)
		default:
			logger.Info("Request completed", fields)
		}

		recorder.RecordAPIRequest(c.Request.Context(), route, status, duration)
	}
}

// SentryMiddleware returns the Sentry middleware with custom configuration
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}

// RecoverWithSentry recovers from panics and sends them to Sentry
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := c.GetString(requestIDKey)
				if hub := sentrygin.GetHubFromContext(c); hub != nil {
					hub.WithScope(func(scope *sentry.Scope) {
						scope.SetRequest(c.Request)
						scope.SetTag("route", routeOf(c))
						scope.SetContext("request", map[string]interface{}{
							"request_id": requestID,
							"method":     c.Request.Method,
							"path":       c.Request.URL.Path,
						})
						hub.RecoverWithContext(c.Request.Context(), err)
					})
				}

				logger.Error("Panic recovered", nil, logger.Fields{
					"request_id": requestID,
					"error":      err,
					"route":      routeOf(c),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": requestID,
				})
			}
		}()
		c.Next()
	}
}
