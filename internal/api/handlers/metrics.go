package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/chordpad-api/internal/library"
	"github.com/Conceptual-Machines/chordpad-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const bytesToMB = 1024 * 1024

type MetricsHandler struct {
	startTime time.Time
	version   string
	recorder  *metrics.Recorder
	library   *library.Library
}

func NewMetricsHandler(version string, recorder *metrics.Recorder, lib *library.Library) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		recorder:  recorder,
		library:   lib,
	}
}

type MetricsResponse struct {
	Status    string           `json:"status"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version"`
	StartTime string           `json:"start_time"`
	Runtime   RuntimeMetrics   `json:"runtime"`
	API       metrics.Snapshot `json:"api"`
	Library   library.Stats    `json:"library"`
}

type RuntimeMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// formatUptime renders a duration as 1h2m3.45s, dropping leading zero units
func formatUptime(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := (d % time.Minute).Seconds()

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}

func readRuntimeMetrics() RuntimeMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeMetrics{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAllocMB:   m.Alloc / bytesToMB,
		MemTotalMB:   m.TotalAlloc / bytesToMB,
		NumGC:        m.NumGC,
	}
}

// GetMetrics reports process, request and generation counters
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	response := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(time.Since(h.startTime)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		Runtime:   readRuntimeMetrics(),
	}
	if h.recorder != nil {
		response.API = h.recorder.Snapshot()
	}
	if h.library != nil {
		response.Library = h.library.Stats()
	}

	c.JSON(http.StatusOK, response)
}
