package helpers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const DefaultPageLimit = 20

// Pagination is the page window requested by the client.
type Pagination struct {
	Page   int  `json:"page"`
	Limit  int  `json:"limit"`
	Offset int  `json:"-"`
	Total  *int `json:"total,omitempty"`
}

// ParsePagination reads ?page and ?limit. Missing or non-positive values fall back to
// page 1 and DefaultPageLimit; limit is capped at maxLimit.
func ParsePagination(c echo.Context, maxLimit int) Pagination {
	page := positiveQueryInt(c, "page", 1)
	limit := positiveQueryInt(c, "limit", DefaultPageLimit)
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func positiveQueryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
