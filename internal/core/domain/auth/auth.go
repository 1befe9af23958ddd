package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
)

// DemoUserID is the identity used when a request carries no bearer token.
const DemoUserID = "demo-user"

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Password       string              `json:"password"`
	EducationLevel user.EducationLevel `json:"educationLevel"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by register and login.
type Session struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expiresIn"`
}

// Claims represents JWT claims; Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`

	jwt.RegisteredClaims
}
