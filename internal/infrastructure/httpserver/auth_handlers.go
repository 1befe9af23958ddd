package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/auth"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

func (s *Server) register(c echo.Context) error {
	var req auth.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := s.authSvc.Register(c.Request().Context(), &req)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "user registered successfully", Data: session})
}

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "login successful", Data: session})
}

func (s *Server) logout(c echo.Context) error {
	if err := s.authSvc.Logout(c.Request().Context(), helpers.GetUserID(c)); err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

func (s *Server) me(c echo.Context) error {
	u, err := s.authSvc.Me(c.Request().Context(), helpers.GetUserID(c))
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: u})
}
