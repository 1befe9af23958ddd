package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/auth"
)

// GetUserID returns the caller's id from a validated bearer token, or the demo identity
// for anonymous requests.
func GetUserID(c echo.Context) string {
	if id, ok := GetUserIDRaw(c); ok {
		return id
	}
	return auth.DemoUserID
}

// BearerToken extracts the token from the Authorization header. ok is false when no
// Authorization header is present; a malformed header is an error.
func BearerToken(c echo.Context) (token string, ok bool, err error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false, nil
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", true, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", true, echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}
	return token, true, nil
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+": "+raw)
	}
	return id, nil
}
