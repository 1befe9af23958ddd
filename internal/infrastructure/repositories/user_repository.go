package repositories

import (
	"context"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

// UserRepository serves the demo profile under any positive id.
type UserRepository struct {
	store simulatedStore
}

func NewUserRepository(p ports.ResourcePool, latency time.Duration) *UserRepository {
	return &UserRepository{store: newSimulatedStore(p, latency)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *user.User
	err := r.store.access(ctx, func() error {
		out = &user.User{
			ID:             id,
			Name:           "Demo User",
			Email:          "demo@example.com",
			EducationLevel: user.EducationUniversity,
			Subjects:       []string{"Mathematics", "History", "Science"},
			JoinedAt:       timePtr(r.store.now()),
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) Update(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *user.User
	err := r.store.access(ctx, func() error {
		out = &user.User{ID: id}
		req.Apply(out)
		out.UpdatedAt = timePtr(r.store.now())
		return nil
	})
	return out, err
}

func (r *UserRepository) GetStats(ctx context.Context, id int64) (*user.Stats, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	var out *user.Stats
	err := r.store.access(ctx, func() error {
		out = &user.Stats{
			UserID:    id,
			Reminders: user.ReminderStats{Total: 25, Completed: 18, Pending: 7, CompletionRate: 72},
			Summaries: user.SummaryStats{Total: 12, AverageLength: 450},
			StudyTime: user.StudyTime{ThisWeek: 15.5, ThisMonth: 62, Trend: "up"},
			Subjects: []user.SubjectProgress{
				{Name: "Mathematics", Count: 10, Progress: 80},
				{Name: "History", Count: 8, Progress: 65},
				{Name: "Science", Count: 7, Progress: 70},
			},
		}
		return nil
	})
	return out, err
}
