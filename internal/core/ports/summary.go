package ports

import (
	"context"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/summary"
)

// SummaryRepository defines the interface for stored summary lookups
type SummaryRepository interface {
	GetByID(ctx context.Context, userID string, id int64) (*summary.Summary, error)
	List(ctx context.Context, userID string, limit, offset int) ([]*summary.Summary, error)
}

// Summarizer turns free-form content into a study summary.
type Summarizer interface {
	Summarize(ctx context.Context, content string, opts summary.Options) (*summary.Generated, error)
}

// SummaryService defines the interface for summary business logic
type SummaryService interface {
	Generate(ctx context.Context, req *summary.GenerateRequest) (g *summary.Generated, cached bool, err error)
	GetSummary(ctx context.Context, userID string, id int64) (s *summary.Summary, cached bool, err error)
	ListSummaries(ctx context.Context, userID string, page, limit int) (items []*summary.Summary, cached bool, err error)
}
