package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/reminder"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

const (
	maxReminderPageLimit = 100
	// exportFlushEvery bounds how many encoded reminders sit in the response buffer.
	exportFlushEvery = 100
)

func (s *Server) listReminders(c echo.Context) error {
	p := helpers.ParsePagination(c, maxReminderPageLimit)

	page, cached, err := s.reminderSvc.ListReminders(c.Request().Context(), helpers.GetUserID(c), p.Page, p.Limit)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	total := page.Total
	p.Total = &total

	resp := cachedData(page.Items, cached)
	resp.Pagination = &p
	return c.JSON(http.StatusOK, resp)
}

// exportReminders streams every reminder as one JSON array using chunked encoding.
func (s *Server) exportReminders(c echo.Context) error {
	items, err := s.reminderSvc.ExportReminders(c.Request().Context(), helpers.GetUserID(c))
	if err != nil {
		return helpers.ToHTTPError(err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(http.StatusOK)

	if _, err := res.Write([]byte("[")); err != nil {
		return err
	}
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if i > 0 {
			b = append([]byte(","), b...)
		}
		if _, err := res.Write(b); err != nil {
			return err
		}
		if (i+1)%exportFlushEvery == 0 {
			res.Flush()
		}
	}
	if _, err := res.Write([]byte("]")); err != nil {
		return err
	}
	res.Flush()
	return nil
}

func (s *Server) getReminder(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	r, cached, err := s.reminderSvc.GetReminder(c.Request().Context(), helpers.GetUserID(c), id)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, cachedData(r, cached))
}

func (s *Server) createReminder(c echo.Context) error {
	var req reminder.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := s.reminderSvc.CreateReminder(c.Request().Context(), helpers.GetUserID(c), &req)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "reminder created successfully", Data: r})
}

func (s *Server) updateReminder(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req reminder.UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	r, err := s.reminderSvc.UpdateReminder(c.Request().Context(), helpers.GetUserID(c), id, &req)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "reminder updated successfully", Data: r})
}

func (s *Server) deleteReminder(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.reminderSvc.DeleteReminder(c.Request().Context(), helpers.GetUserID(c), id); err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "reminder deleted successfully", ID: &id})
}

func (s *Server) completeReminder(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	r, err := s.reminderSvc.CompleteReminder(c.Request().Context(), helpers.GetUserID(c), id)
	if err != nil {
		return helpers.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "reminder marked as completed", Data: r})
}
