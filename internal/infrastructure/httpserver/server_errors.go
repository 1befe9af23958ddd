package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// httpErrorHandler renders every error as {"error": {"message", "status"}}.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := helpers.ToHTTPError(err)
	msg := helpers.ErrorMessage(he)
	if errors.Is(err, echo.ErrNotFound) {
		msg = "route not found"
	}

	if he.Code >= http.StatusInternalServerError && s.logger != nil {
		cause := err
		if he.Internal != nil {
			cause = he.Internal
		}
		s.logger.WithError(cause).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
			"status": he.Code,
		}).Error("request failed")
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(he.Code)
	} else {
		werr = c.JSON(he.Code, errorResponse{Error: errorBody{Message: msg, Status: he.Code}})
	}
	if werr != nil && s.logger != nil {
		s.logger.WithError(werr).Debug("failed to write error response")
	}
}
