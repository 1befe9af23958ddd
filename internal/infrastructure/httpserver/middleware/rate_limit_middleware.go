package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

const rateLimitMessage = "too many requests from this IP, please try again later"

// RateLimitSettings configure the in-process limiter used when no RateLimiterService is wired.
type RateLimitSettings struct {
	Requests int
	Window   time.Duration
}

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	settings    RateLimitSettings
	logger      *logrus.Logger
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, settings RateLimitSettings, logger *logrus.Logger) *RateLimitMiddleware {
	if settings.Requests <= 0 {
		settings.Requests = 100
	}
	if settings.Window <= 0 {
		settings.Window = 15 * time.Minute
	}
	return &RateLimitMiddleware{rateLimiter: rateLimiter, settings: settings, logger: logger}
}

// Handler limits requests per client IP, through the shared RateLimiterService when one
// is configured and through an in-process token bucket otherwise.
func (r *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	if r.rateLimiter == nil {
		return r.memoryHandler()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientKey := c.RealIP()

			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), clientKey)
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithField("client", clientKey).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
			}
			return next(c)
		}
	}
}

// memoryHandler spreads Requests over Window as a token bucket with a burst of Requests,
// so an idle client can spend its whole window allowance at once.
func (r *RateLimitMiddleware) memoryHandler() echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(r.settings.Requests) / r.settings.Window.Seconds()),
		Burst:     r.settings.Requests,
		ExpiresIn: r.settings.Window,
	})
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if r.logger != nil {
				r.logger.WithField("client", identifier).Debug("rate limit exceeded")
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(r.settings.Requests))
			return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
		},
	})
}
