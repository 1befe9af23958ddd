package ports

import (
	"context"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/reminder"
)

// ReminderRepository defines the interface for reminder data operations
type ReminderRepository interface {
	List(ctx context.Context, userID string, limit, offset int) (*reminder.Page, error)
	ListAll(ctx context.Context, userID string) ([]*reminder.Reminder, error)
	GetByID(ctx context.Context, userID string, id int64) (*reminder.Reminder, error)
	Create(ctx context.Context, userID string, req *reminder.CreateReminderRequest) (*reminder.Reminder, error)
	Update(ctx context.Context, userID string, id int64, req *reminder.UpdateReminderRequest) (*reminder.Reminder, error)
	Delete(ctx context.Context, userID string, id int64) error
	Complete(ctx context.Context, userID string, id int64) (*reminder.Reminder, error)
}

// ReminderService defines the interface for reminder business logic
type ReminderService interface {
	ListReminders(ctx context.Context, userID string, page, limit int) (p *reminder.Page, cached bool, err error)
	ExportReminders(ctx context.Context, userID string) ([]*reminder.Reminder, error)
	GetReminder(ctx context.Context, userID string, id int64) (r *reminder.Reminder, cached bool, err error)
	CreateReminder(ctx context.Context, userID string, req *reminder.CreateReminderRequest) (*reminder.Reminder, error)
	UpdateReminder(ctx context.Context, userID string, id int64, req *reminder.UpdateReminderRequest) (*reminder.Reminder, error)
	DeleteReminder(ctx context.Context, userID string, id int64) error
	CompleteReminder(ctx context.Context, userID string, id int64) (*reminder.Reminder, error)
}
