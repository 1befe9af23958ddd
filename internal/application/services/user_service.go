package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/utils"
)

const (
	userTTL      = 10 * time.Minute
	userStatsTTL = 5 * time.Minute
)

func userKey(id int64) string      { return fmt.Sprintf("user:%d", id) }
func userStatsKey(id int64) string { return fmt.Sprintf("user:%d:stats", id) }

type UserService struct {
	repo   ports.UserRepository
	cache  ports.Cache
	sf     singleflight.Group
	logger *logrus.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.Cache, logger *logrus.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

var _ ports.UserService = (*UserService)(nil)

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, bool, error) {
	return fetchCached(ctx, s.cache, &s.sf, userKey(id), userTTL,
		func(ctx context.Context) (*user.User, error) {
			return s.repo.GetByID(ctx, id)
		})
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error) {
	if req.Email != nil {
		if err := utils.Email("email", *req.Email); err != nil {
			return nil, err
		}
	}
	u, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Delete(userKey(id))
		s.cache.Delete(userStatsKey(id))
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": id}).Info("user profile updated")
	}
	return u, nil
}

func (s *UserService) GetUserStats(ctx context.Context, id int64) (*user.Stats, bool, error) {
	return fetchCached(ctx, s.cache, &s.sf, userStatsKey(id), userStatsTTL,
		func(ctx context.Context) (*user.Stats, error) {
			return s.repo.GetStats(ctx, id)
		})
}
