package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/study-assistant-api/configs"
	"github.com/avatarctic/study-assistant-api/internal/core/domain"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/auth"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/utils"
)

const demoUserName = "Demo User"

// AuthService issues signed tokens for a mock account model: any well-formed login
// succeeds and registration does not persist. Tokens are real HS256 JWTs so that
// downstream requests can carry a stable user id.
type AuthService struct {
	jwtConfig *config.JWTConfig
	logger    *logrus.Logger
	now       func() time.Time
}

func NewAuthService(jwtConfig *config.JWTConfig, logger *logrus.Logger) *AuthService {
	return &AuthService{jwtConfig: jwtConfig, logger: logger, now: time.Now}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.Session, error) {
	if err := utils.Required("name", req.Name, "email", req.Email, "password", req.Password); err != nil {
		return nil, err
	}
	if err := utils.Email("email", req.Email); err != nil {
		return nil, err
	}

	now := s.now()
	level := req.EducationLevel
	if level == "" {
		level = user.EducationUniversity
	}
	u := &user.User{
		ID:             now.UnixMilli(),
		Name:           req.Name,
		Email:          req.Email,
		EducationLevel: level,
		CreatedAt:      &now,
	}

	session, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user registered")
	}
	return session, nil
}

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.Session, error) {
	if err := utils.Required("email", req.Email, "password", req.Password); err != nil {
		return nil, err
	}
	u := &user.User{
		ID:             1,
		Name:           demoUserName,
		Email:          req.Email,
		EducationLevel: user.EducationUniversity,
	}
	return s.issue(u)
}

// Logout is a no-op: tokens are stateless and expire on their own.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID}).Debug("logout")
	}
	return nil
}

// Me returns the demo profile. A numeric subject is reflected as the profile id.
func (s *AuthService) Me(ctx context.Context, userID string) (*user.User, error) {
	id := int64(1)
	if n, err := strconv.ParseInt(userID, 10, 64); err == nil && n > 0 {
		id = n
	}
	return &user.User{
		ID:             id,
		Name:           demoUserName,
		Email:          "demo@example.com",
		EducationLevel: user.EducationUniversity,
		Preferences: &user.Preferences{
			Notifications: true,
			Theme:         "light",
		},
	}, nil
}

func (s *AuthService) issue(u *user.User) (*auth.Session, error) {
	now := s.now()
	claims := &auth.Claims{
		Email: u.Email,
		Name:  u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &auth.Session{
		User:      u,
		Token:     token,
		ExpiresIn: int64(s.jwtConfig.TokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	return claims, nil
}
