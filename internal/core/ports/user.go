package ports

import (
	"context"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Update(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error)
	GetStats(ctx context.Context, id int64) (*user.Stats, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	GetUser(ctx context.Context, id int64) (u *user.User, cached bool, err error)
	UpdateUser(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error)
	GetUserStats(ctx context.Context, id int64) (s *user.Stats, cached bool, err error)
}
