package repositories

import (
	"context"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/summary"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

// SummaryRepository serves fixture summaries.
type SummaryRepository struct {
	store simulatedStore
}

func NewSummaryRepository(p ports.ResourcePool, latency time.Duration) *SummaryRepository {
	return &SummaryRepository{store: newSimulatedStore(p, latency)}
}

var _ ports.SummaryRepository = (*SummaryRepository)(nil)

func (r *SummaryRepository) GetByID(ctx context.Context, userID string, id int64) (*summary.Summary, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *summary.Summary
	err := r.store.access(ctx, func() error {
		out = &summary.Summary{
			ID:             id,
			UserID:         userID,
			Title:          "Summary: the Industrial Revolution",
			OriginalLength: 5000,
			SummaryLength:  500,
			KeyPoints: []string{
				"The Industrial Revolution began in England in the 18th century",
				"It shifted the economy from agriculture to industry",
				"It introduced new technologies such as the steam engine",
				"It radically changed society and working conditions",
			},
			FullSummary: "The Industrial Revolution was a period of major change...",
			CreatedAt:   r.store.now(),
		}
		return nil
	})
	return out, err
}

func (r *SummaryRepository) List(ctx context.Context, userID string, limit, offset int) ([]*summary.Summary, error) {
	var out []*summary.Summary
	err := r.store.access(ctx, func() error {
		now := r.store.now()
		all := []*summary.Summary{
			{ID: 1, UserID: userID, Title: "Summary: the Industrial Revolution", SummaryLength: 500, CreatedAt: now},
			{ID: 2, UserID: userID, Title: "Summary: the Second World War", SummaryLength: 450, CreatedAt: now},
		}
		out = window(all, limit, offset)
		return nil
	})
	return out, err
}
