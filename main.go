package main

import (
	"context"
	"log"
	"time"

	"github.com/Conceptual-Machines/chordpad-api/internal/api"
	"github.com/Conceptual-Machines/chordpad-api/internal/config"
	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/llm"
	"github.com/Conceptual-Machines/chordpad-api/internal/metrics"
	"github.com/Conceptual-Machines/chordpad-api/internal/observability"
	"github.com/Conceptual-Machines/chordpad-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "chordpad-api@" + releaseVersion,            // Use embedded release version
			EnableTracing:    true,                                     // Enable tracing for spans
			TracesSampleRate: 1.0,                                      // 100% sampling for now, adjust based on volume
			EnableLogs:       true,                                     // Enable Sentry Logs feature
			Debug:            cfg.Environment != environmentProduction, // Enable debug in non-prod
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	observability.InitializeLangfuse(ctx, cfg)

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchNamespace)
	if err != nil {
		log.Printf("Failed to initialize CloudWatch metrics: %v", err)
	}
	recorder := metrics.NewRecorder(cloudwatch)

	// Load the embedded chord library
	lib, err := library.Default()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to load chord library:", err)
	}

	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	if !cfg.HasProvider() {
		log.Println("⚠️  No AI provider configured (set GEMINI_API_KEY or OPENAI_API_KEY), generation disabled")
	}
	progressions := services.NewProgressionService(factory, lib, recorder, cfg.DefaultModel, cfg.GenerationTimeout)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(cfg, api.Dependencies{
		Library:   lib,
		Generator: progressions,
		Providers: factory.Available(),
		Recorder:  recorder,
	}, GetVersion())

	// Start server
	port := cfg.Port

	log.Printf("🚀 Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
