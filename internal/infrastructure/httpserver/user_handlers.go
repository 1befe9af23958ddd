package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getUser(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	u, cached, err := s.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, cachedData(u, cached))
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req user.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	u, err := s.userService.UpdateUser(c.Request().Context(), id, &req)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "profile updated successfully", Data: u})
}

func (s *Server) getUserStats(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	st, cached, err := s.userService.GetUserStats(c.Request().Context(), id)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, cachedData(st, cached))
}
