package ports

import (
	"context"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/auth"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *auth.RegisterRequest) (*auth.Session, error)
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.Session, error)
	Logout(ctx context.Context, userID string) error
	Me(ctx context.Context, userID string) (*user.User, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}
