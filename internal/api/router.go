package api

import (
	"github.com/Conceptual-Machines/chordpad-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/chordpad-api/internal/api/middleware"
	"github.com/Conceptual-Machines/chordpad-api/internal/config"
	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/metrics"
	webhandlers "github.com/Conceptual-Machines/chordpad-api/internal/web/handlers"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	Library   *library.Library
	Generator handlers.ProgressionGenerator
	Providers []string
	Recorder  *metrics.Recorder
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	if deps.Recorder == nil {
		deps.Recorder = metrics.NewRecorder(nil)
	}

	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.Recorder))

	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.Providers, deps.Library)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, deps.Recorder, deps.Library)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Library browser
	webHandler := webhandlers.NewWebHandler(deps.Library)
	router.GET("/", webHandler.Home)
	router.GET("/library/:category", webHandler.Category)

	v1 := router.Group("/api/v1")
	{
		chordHandler := handlers.NewChordHandler()
		v1.POST("/chords/parse", chordHandler.Parse)
		v1.POST("/chords/notes", chordHandler.Notes)
		v1.POST("/chords/edit", chordHandler.Edit)

		v1.GET("/circle/:root", handlers.Circle)
		v1.GET("/keys", handlers.Keys)

		progressionHandler := handlers.NewProgressionHandler()
		v1.POST("/progressions/transpose", progressionHandler.Transpose)
		v1.POST("/progressions/humanize", progressionHandler.Humanize)

		libraryHandler := handlers.NewLibraryHandler(deps.Library)
		v1.GET("/library", libraryHandler.ListCategories)
		v1.GET("/library/:category", libraryHandler.GetCategory)

		sequenceHandler := handlers.NewSequenceHandler()
		v1.GET("/sequences/templates", sequenceHandler.Templates)
		v1.POST("/sequences/events", sequenceHandler.Events)
		v1.POST("/sequences/render", sequenceHandler.Render)

		// AI progression generation
		generationHandler := handlers.NewGenerationHandler(deps.Generator)
		v1.POST("/generations", generationHandler.Generate)
		v1.GET("/generations", libraryHandler.ListGenerated)
	}

	return router
}
