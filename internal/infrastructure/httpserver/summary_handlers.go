package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/summary"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

const (
	maxSummaryPageLimit = 50
	maxUploadBytes      = 10 * 1024 * 1024
)

func (s *Server) generateSummary(c echo.Context) error {
	var req summary.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	g, cached, err := s.summarySvc.Generate(c.Request().Context(), &req)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, cachedData(g, cached))
}

// uploadSummary describes the upload contract; file processing is not offered yet.
func (s *Server) uploadSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":      "file upload endpoint",
		"info":         "send extracted text to /api/summaries/generate; streamed file processing is not available",
		"maxFileBytes": maxUploadBytes,
	})
}

func (s *Server) getSummary(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	sm, cached, err := s.summarySvc.GetSummary(c.Request().Context(), helpers.GetUserID(c), id)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, cachedData(sm, cached))
}

func (s *Server) listSummaries(c echo.Context) error {
	p := helpers.ParsePagination(c, maxSummaryPageLimit)
	items, cached, err := s.summarySvc.ListSummaries(c.Request().Context(), helpers.GetUserID(c), p.Page, p.Limit)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	resp := cachedData(items, cached)
	resp.Pagination = &p
	return c.JSON(http.StatusOK, resp)
}
