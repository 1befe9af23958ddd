package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}
			start := time.Now()
			m.logger.WithFields(logrus.Fields{"method": c.Request().Method, "path": c.Path()}).Debug("incoming request")

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = helpers.HTTPStatus(err)
			}
			entry := m.logger.WithFields(logrus.Fields{
				"method":      c.Request().Method,
				"path":        c.Request().URL.Path,
				"status":      status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
				"ip":          c.RealIP(),
			})
			switch {
			case status >= 500:
				entry.WithError(err).Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request completed")
			}
			return err
		}
	}
}
