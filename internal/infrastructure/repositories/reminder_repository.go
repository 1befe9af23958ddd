package repositories

import (
	"context"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/reminder"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

// ReminderRepository serves fixture reminders. Writes are acknowledged but not stored.
type ReminderRepository struct {
	store simulatedStore
}

func NewReminderRepository(p ports.ResourcePool, latency time.Duration) *ReminderRepository {
	return &ReminderRepository{store: newSimulatedStore(p, latency)}
}

var _ ports.ReminderRepository = (*ReminderRepository)(nil)

func (r *ReminderRepository) fixtures(userID string) []*reminder.Reminder {
	now := r.store.now()
	return []*reminder.Reminder{
		{
			ID:          1,
			UserID:      userID,
			Title:       "Math homework",
			Description: "Solve exercises 1-20 from the textbook",
			Subject:     "Mathematics",
			DueDate:     timePtr(now.Add(24 * time.Hour)),
			Priority:    reminder.PriorityHigh,
		},
		{
			ID:          2,
			UserID:      userID,
			Title:       "Read chapter 5",
			Description: "History: the Industrial Revolution",
			Subject:     "History",
			DueDate:     timePtr(now.Add(48 * time.Hour)),
			Priority:    reminder.PriorityMedium,
		},
	}
}

func (r *ReminderRepository) List(ctx context.Context, userID string, limit, offset int) (*reminder.Page, error) {
	var page *reminder.Page
	err := r.store.access(ctx, func() error {
		all := r.fixtures(userID)
		page = &reminder.Page{Items: window(all, limit, offset), Total: len(all)}
		return nil
	})
	return page, err
}

func (r *ReminderRepository) ListAll(ctx context.Context, userID string) ([]*reminder.Reminder, error) {
	var out []*reminder.Reminder
	err := r.store.access(ctx, func() error {
		out = r.fixtures(userID)
		return nil
	})
	return out, err
}

func (r *ReminderRepository) GetByID(ctx context.Context, userID string, id int64) (*reminder.Reminder, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *reminder.Reminder
	err := r.store.access(ctx, func() error {
		now := r.store.now()
		out = &reminder.Reminder{
			ID:          id,
			UserID:      userID,
			Title:       "Math homework",
			Description: "Solve exercises 1-20 from the textbook",
			Subject:     "Mathematics",
			DueDate:     timePtr(now.Add(24 * time.Hour)),
			Priority:    reminder.PriorityHigh,
			CreatedAt:   timePtr(now),
		}
		return nil
	})
	return out, err
}

func (r *ReminderRepository) Create(ctx context.Context, userID string, req *reminder.CreateReminderRequest) (*reminder.Reminder, error) {
	var out *reminder.Reminder
	err := r.store.access(ctx, func() error {
		now := r.store.now()
		out = &reminder.Reminder{
			ID:          now.UnixMilli(),
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			Subject:     req.Subject,
			DueDate:     req.DueDate,
			Priority:    req.Priority,
			Repeat:      req.Repeat,
			CreatedAt:   timePtr(now),
		}
		return nil
	})
	return out, err
}

func (r *ReminderRepository) Update(ctx context.Context, userID string, id int64, req *reminder.UpdateReminderRequest) (*reminder.Reminder, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *reminder.Reminder
	err := r.store.access(ctx, func() error {
		out = &reminder.Reminder{ID: id, UserID: userID}
		req.Apply(out)
		out.UpdatedAt = timePtr(r.store.now())
		return nil
	})
	return out, err
}

func (r *ReminderRepository) Delete(ctx context.Context, userID string, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	return r.store.access(ctx, func() error { return nil })
}

func (r *ReminderRepository) Complete(ctx context.Context, userID string, id int64) (*reminder.Reminder, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *reminder.Reminder
	err := r.store.access(ctx, func() error {
		out = &reminder.Reminder{
			ID:          id,
			UserID:      userID,
			Completed:   true,
			CompletedAt: timePtr(r.store.now()),
		}
		return nil
	})
	return out, err
}

// window returns items[offset:offset+limit] clamped to the slice bounds.
func window[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
