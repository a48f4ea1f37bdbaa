package config

import (
	"os"
	"strings"
	"time"
)

const (
	defaultModel             = "gemini-2.5-flash"
	defaultGenerationTimeout = 30 * time.Second
)

// Config holds the application configuration
// Note: This is a stateless configuration - the chord library is embedded and
// generated sets live in memory, so there is no database
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM API Keys
	OpenAIAPIKey string // OpenAI API key for GPT models
	GeminiAPIKey string // Google Gemini API key

	// Generation
	DefaultModel      string        // Model used when a request names none
	GenerationTimeout time.Duration // Upper bound on a single provider call

	// HTTP
	CORSAllowedOrigins []string

	// Observability
	SentryDSN           string // Sentry DSN for error tracking
	LangfusePublicKey   string // Langfuse public key
	LangfuseSecretKey   string // Langfuse secret key
	LangfuseHost        string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled     bool   // Feature flag for Langfuse
	CloudWatchNamespace string // Namespace for custom metrics in production
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		DefaultModel:        getEnv("DEFAULT_MODEL", defaultModel),
		GenerationTimeout:   getDuration("GENERATION_TIMEOUT", defaultGenerationTimeout),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:   getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:   getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:        getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:     getEnv("LANGFUSE_ENABLED", "false") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "CHORDPAD/API"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a Go duration ("45s", "2m"); invalid or non-positive values use the default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// IsProduction reports whether production-only integrations (CloudWatch) should run
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasProvider reports whether at least one AI provider key is configured
func (c *Config) HasProvider() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}
