package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

type JWTMiddleware struct {
	authService ports.AuthService
	logger      *logrus.Logger
}

func NewJWTMiddleware(authService ports.AuthService, logger *logrus.Logger) *JWTMiddleware {
	return &JWTMiddleware{authService: authService, logger: logger}
}

// OptionalJWT sets the user context when a bearer token is present. Requests without an
// Authorization header continue as the demo user; a token that fails validation is rejected.
func (m *JWTMiddleware) OptionalJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, present, err := helpers.BearerToken(c)
			if err != nil {
				return err
			}
			if !present {
				return next(c)
			}

			claims, err := m.authService.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path, "error": err.Error()}).Warn("JWT validation failed")
				}
				return helpers.ToHTTPError(err)
			}

			helpers.SetUserID(c, claims.Subject)
			helpers.SetClaims(c, claims)

			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"user_id": claims.Subject}).Debug("jwt validated and user context set")
			}
			return next(c)
		}
	}
}
