package middleware

import (
	"strconv"
	"time"

	"user_details/internal/observability"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware records request count, latency and in-flight requests.
func PrometheusMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		endpoint := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// routeLabel returns the route pattern (e.g. /users/:userId) so ids never
// become label values. Unrouted paths share one label.
func routeLabel(c *gin.Context) string {
	if endpoint := c.FullPath(); endpoint != "" {
		return endpoint
	}
	return "unmatched"
}
