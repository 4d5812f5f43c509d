package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	awspkg "github.com/yashrajoria/storefront/backend/pkg/aws"
)

// RequestMetrics is the part of the CloudWatch client the middleware needs.
type RequestMetrics interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, d time.Duration, dimensions map[string]string) error
}

// MetricsMiddleware records one request count and latency per route, plus a
// 4xx or 5xx counter. Nothing is recorded when metrics are disabled.
func MetricsMiddleware(metrics RequestMetrics, serviceName string) gin.HandlerFunc {
	if metrics == nil || !metrics.IsEnabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		dims := map[string]string{
			"Service": serviceName,
			"Route":   c.Request.Method + " " + route,
			"Class":   statusClass(status),
		}

		go func(ctx context.Context) {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			_ = metrics.RecordCount(ctx, awspkg.MetricHTTPRequests, dims)
			_ = metrics.RecordLatency(ctx, awspkg.MetricHTTPLatency, elapsed, dims)
			switch {
			case status >= 500:
				_ = metrics.RecordCount(ctx, awspkg.MetricHTTP5xx, dims)
			case status >= 400:
				_ = metrics.RecordCount(ctx, awspkg.MetricHTTP4xx, dims)
			}
		}(context.WithoutCancel(c.Request.Context()))
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return strconv.Itoa(status/100) + "xx"
}
