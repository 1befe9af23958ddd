package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/observability"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *observability.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware instance
func NewMetricsMiddleware(metrics *observability.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// CollectHTTPMetrics creates middleware that collects HTTP request metrics
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				// unmatched routes would otherwise create one series per URL
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				status = helpers.HTTPStatus(err)
			}
			m.metrics.RecordHTTPRequest(c.Request().Method, path, strconv.Itoa(status), time.Since(start))

			return err
		}
	}
}
