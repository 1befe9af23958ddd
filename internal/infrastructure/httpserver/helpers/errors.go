package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/pool"
)

// ToHTTPError maps service and pool errors onto HTTP errors. Unknown errors become 500
// with a generic message.
func ToHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "resource not found")
	case errors.Is(err, pool.ErrPoolTimeout), errors.Is(err, pool.ErrPoolClosed), errors.Is(err, pool.ErrPoolInvariantViolation):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "backing store unavailable, try again later")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}

// HTTPStatus returns the status code ToHTTPError would produce.
func HTTPStatus(err error) int {
	return ToHTTPError(err).Code
}

// ErrorMessage renders the message of an HTTP error for the response body.
func ErrorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
