package middleware

import (
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/observability"
)

// Deps groups what the middleware collection needs.
type Deps struct {
	AuthService   ports.AuthService
	RateLimiter   ports.RateLimiterService // nil selects the in-process limiter
	RateLimit     RateLimitSettings
	Instrumenter  *observability.Instrumenter
	PressureGuard ports.PressureGuard
	Metrics       *observability.Metrics
}

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	JWT       *JWTMiddleware
	Logging   *LoggingMiddleware
	RateLimit *RateLimitMiddleware
	Metrics   *MetricsMiddleware
	Memory    *MemoryMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(deps Deps, logger *logrus.Logger) *MiddlewareCollection {
	return &MiddlewareCollection{
		JWT:       NewJWTMiddleware(deps.AuthService, logger),
		Logging:   NewLoggingMiddleware(logger),
		RateLimit: NewRateLimitMiddleware(deps.RateLimiter, deps.RateLimit, logger),
		Metrics:   NewMetricsMiddleware(deps.Metrics),
		Memory:    NewMemoryMiddleware(deps.Instrumenter, deps.PressureGuard, logger),
	}
}
