package httpserver

import (
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/helpers"
)

// dataResponse is the envelope for successful API responses.
type dataResponse struct {
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data"`
	Pagination *helpers.Pagination `json:"pagination,omitempty"`
	Cached     *bool               `json:"cached,omitempty"`
}

func cachedData(data any, cached bool) dataResponse {
	return dataResponse{Data: data, Cached: &cached}
}

type messageResponse struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}
