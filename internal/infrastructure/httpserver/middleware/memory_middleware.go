package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/observability"
)

// MemoryMiddleware ties requests to the memory-management layer.
type MemoryMiddleware struct {
	instrumenter *observability.Instrumenter
	guard        ports.PressureGuard
	logger       *logrus.Logger
}

func NewMemoryMiddleware(instrumenter *observability.Instrumenter, guard ports.PressureGuard, logger *logrus.Logger) *MemoryMiddleware {
	return &MemoryMiddleware{instrumenter: instrumenter, guard: guard, logger: logger}
}

// TrackUsage measures duration and heap growth of everything below it. The operation id
// is "METHOD path request-id"; the request id comes from the RequestID middleware or a
// fresh uuid.
func (m *MemoryMiddleware) TrackUsage() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m.instrumenter == nil {
			return next
		}
		return func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			opID := c.Request().Method + " " + c.Request().URL.Path + " " + reqID
			helpers.SetOperationID(c, opID)

			return m.instrumenter.Track(opID, func() error { return next(c) })
		}
	}
}

// Pressure clears the cache before the handler runs when the last host sample showed
// memory pressure. The check never fails the request.
func (m *MemoryMiddleware) Pressure() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m.guard == nil {
			return next
		}
		return func(c echo.Context) error {
			if m.guard.Check() && m.logger != nil {
				m.logger.WithFields(logrus.Fields{"path": c.Request().URL.Path}).Debug("cache cleared before request under memory pressure")
			}
			return next(c)
		}
	}
}
