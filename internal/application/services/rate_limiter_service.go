package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/study-assistant-api/internal/core/ports"
)

// RateLimiterService implements a fixed-window limit per client key.
type RateLimiterService struct {
	repo      ports.RateLimitRepository
	limit     int
	window    time.Duration
	keyPrefix string
	logger    *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	Requests  int
	Window    time.Duration
	KeyPrefix string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	// Apply defaults
	limit := 100
	w := 15 * time.Minute
	kp := "ratelimit:client"
	if cfg != nil {
		if cfg.Requests > 0 {
			limit = cfg.Requests
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
	}
	return &RateLimiterService{repo: repo, limit: limit, window: w, keyPrefix: kp, logger: logger}
}

var _ ports.RateLimiterService = (*RateLimiterService)(nil)

func (s *RateLimiterService) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.repo.IncrementWindow(ctx, clientKey, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"client": clientKey}).WithError(err).Error("rate limiter: failed to increment window")
		}
		// fail open
		return true, s.limit, s.limit, reset, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client": clientKey, "count": count, "limit": s.limit}).Debug("rate limiter window state")
	}
	if count > s.limit {
		return false, 0, s.limit, reset, nil
	}
	return true, s.limit - count, s.limit, reset, nil
}
