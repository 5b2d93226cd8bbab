package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/cleberrangel/meeting-cost-api/internal/websocket"
)

// HealthHandler handles health check and metrics endpoints
type HealthHandler struct {
	wsHub        *websocket.Hub
	feedCacheDir string
	version      string
	startTime    time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(wsHub *websocket.Hub, feedCacheDir, version string) *HealthHandler {
	return &HealthHandler{
		wsHub:        wsHub,
		feedCacheDir: feedCacheDir,
		version:      version,
		startTime:    time.Now(),
	}
}

// LivenessCheck returns basic liveness status
// @Summary Liveness check
// @Description Returns basic liveness status for Kubernetes probes
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HealthCheck returns comprehensive health information
// @Summary Health check
// @Description Returns health information for all components
// @Tags health
// @Produce json
// @Success 200 {object} metrics.HealthCheck
// @Failure 503 {object} metrics.HealthCheck
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	components := make(map[string]metrics.HealthStatus)

	components["feed_cache"] = metrics.CheckDirWritable(h.feedCacheDir)
	components["memory"] = metrics.CheckMemoryHealth(512)

	if h.wsHub != nil {
		components["websocket"] = h.checkWebSocketHealth()
	}

	overallStatus := metrics.DetermineOverallStatus(components)

	healthCheck := metrics.HealthCheck{
		Status:     overallStatus,
		Version:    h.version,
		Uptime:     time.Since(h.startTime).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, healthCheck)
}

// checkWebSocketHealth checks WebSocket hub health
func (h *HealthHandler) checkWebSocketHealth() metrics.HealthStatus {
	if h.wsHub == nil {
		return metrics.HealthStatus{
			Status:  "unhealthy",
			Message: "WebSocket hub not initialized",
		}
	}

	if h.wsHub.GetConnectionCount() > 100 {
		return metrics.HealthStatus{
			Status:  "degraded",
			Message: "WebSocket connections near limit",
		}
	}

	return metrics.HealthStatus{
		Status: "healthy",
	}
}

// GetMetrics returns application metrics
// @Summary Get application metrics
// @Description Returns all application metrics including request and feed stats
// @Tags metrics
// @Produce json
// @Success 200 {object} metrics.MetricsSnapshot
// @Router /metrics/stats [get]
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	snapshot := metrics.Get().Snapshot()
	c.JSON(http.StatusOK, snapshot)
}

// GetMetricsSummary returns a summary of key metrics
// @Summary Get metrics summary
// @Description Returns a summary of key application metrics
// @Tags metrics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /metrics/summary [get]
func (h *HealthHandler) GetMetricsSummary(c *gin.Context) {
	snapshot := metrics.Get().Snapshot()

	requestSuccessRate := float64(0)
	if snapshot.Requests.Total > 0 {
		requestSuccessRate = float64(snapshot.Requests.Successful) / float64(snapshot.Requests.Total) * 100
	}

	reportSuccessRate := float64(0)
	totalReports := snapshot.Reports.Generated + snapshot.Reports.Errors
	if totalReports > 0 {
		reportSuccessRate = float64(snapshot.Reports.Generated) / float64(totalReports) * 100
	}

	summary := gin.H{
		"uptime_seconds": snapshot.UptimeSeconds,
		"version":        h.version,
		"requests": gin.H{
			"total":        snapshot.Requests.Total,
			"success_rate": requestSuccessRate,
			"avg_latency":  snapshot.Requests.AvgLatencyMs,
		},
		"reports": gin.H{
			"generated":    snapshot.Reports.Generated,
			"exported":     snapshot.Reports.Exported,
			"success_rate": reportSuccessRate,
		},
		"demo": gin.H{
			"batches":  snapshot.Demo.Batches,
			"meetings": snapshot.Demo.Meetings,
		},
		"feeds": gin.H{
			"fetches":     snapshot.Feeds.Fetches,
			"cache_hits":  snapshot.Feeds.CacheHits,
			"avg_latency": snapshot.Feeds.AvgLatencyMs,
		},
		"websocket": gin.H{
			"connections": snapshot.WebSocket.Connections,
		},
		"system": gin.H{
			"goroutines":  snapshot.System.Goroutines,
			"heap_mb":     snapshot.System.HeapAllocMB,
			"heap_use_mb": snapshot.System.HeapInUseMB,
		},
	}

	c.JSON(http.StatusOK, summary)
}

// GetEndpointMetrics returns metrics for specific endpoints
// @Summary Get endpoint metrics
// @Description Returns metrics broken down by endpoint
// @Tags metrics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /metrics/endpoints [get]
func (h *HealthHandler) GetEndpointMetrics(c *gin.Context) {
	snapshot := metrics.Get().Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"endpoints": snapshot.Endpoints,
	})
}
