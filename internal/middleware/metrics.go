package middleware

import (
	"strings"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/logger"
	"github.com/cleberrangel/meeting-cost-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware tracks request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start).Milliseconds()
		statusCode := c.Writer.Status()
		success := statusCode < 400

		metrics.Get().IncrementRequests(success, latency)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.Get().TrackEndpoint(path, c.Request.Method, statusCode, latency)
	}
}

// AuditMiddleware logs audit events for report-producing operations
func AuditMiddleware() gin.HandlerFunc {
	auditPrefixes := []string{
		"/api/v1/reports",
		"/api/v1/demo/reports",
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		shouldAudit := false
		for _, prefix := range auditPrefixes {
			if strings.HasPrefix(path, prefix) {
				shouldAudit = true
				break
			}
		}

		c.Next()

		if shouldAudit && c.Request.Method == "POST" {
			duration := time.Since(start).Milliseconds()
			logger.AuditRequest(
				c.Request.Context(),
				c.Request.Method,
				path,
				c.Writer.Status(),
				duration,
				c.ClientIP(),
			)
		}
	}
}
