package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/reminder"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/utils"
)

const (
	reminderListTTL = 5 * time.Minute
	reminderTTL     = 5 * time.Minute
)

func reminderListPrefix(userID string) string { return "reminders:" + userID + ":" }

func reminderListKey(userID string, page, limit int) string {
	return fmt.Sprintf("%s%d:%d", reminderListPrefix(userID), page, limit)
}

func reminderKey(userID string, id int64) string { return fmt.Sprintf("reminder:%s:%d", userID, id) }

type ReminderService struct {
	repo   ports.ReminderRepository
	cache  ports.Cache
	sf     singleflight.Group
	logger *logrus.Logger

	// generations counts invalidations per user. A load that started under an older
	// generation is returned to its callers but never written to the cache.
	genMu       sync.Mutex
	generations map[string]uint64
}

func NewReminderService(repo ports.ReminderRepository, cache ports.Cache, logger *logrus.Logger) *ReminderService {
	return &ReminderService{repo: repo, cache: cache, logger: logger, generations: make(map[string]uint64)}
}

// gateFor snapshots the user's generation. The returned flight key includes it so loads
// started after an invalidation never join an older one.
func (s *ReminderService) gateFor(userID, key string) (string, storeGate) {
	s.genMu.Lock()
	gen := s.generations[userID]
	s.genMu.Unlock()

	return fmt.Sprintf("%s#%d", key, gen), func(write func()) {
		s.genMu.Lock()
		defer s.genMu.Unlock()
		if s.generations[userID] == gen {
			write()
		}
	}
}

var _ ports.ReminderService = (*ReminderService)(nil)

func (s *ReminderService) ListReminders(ctx context.Context, userID string, page, limit int) (*reminder.Page, bool, error) {
	if page < 1 {
		page = 1
	}
	key := reminderListKey(userID, page, limit)
	flightKey, gate := s.gateFor(userID, key)
	return fetchCachedGated(ctx, s.cache, &s.sf, key, flightKey, reminderListTTL, gate,
		func(ctx context.Context) (*reminder.Page, error) {
			return s.repo.List(ctx, userID, limit, (page-1)*limit)
		})
}

// ExportReminders loads every reminder for streaming; the result is not cached.
func (s *ReminderService) ExportReminders(ctx context.Context, userID string) ([]*reminder.Reminder, error) {
	return s.repo.ListAll(ctx, userID)
}

func (s *ReminderService) GetReminder(ctx context.Context, userID string, id int64) (*reminder.Reminder, bool, error) {
	key := reminderKey(userID, id)
	flightKey, gate := s.gateFor(userID, key)
	return fetchCachedGated(ctx, s.cache, &s.sf, key, flightKey, reminderTTL, gate,
		func(ctx context.Context) (*reminder.Reminder, error) {
			return s.repo.GetByID(ctx, userID, id)
		})
}

func (s *ReminderService) CreateReminder(ctx context.Context, userID string, req *reminder.CreateReminderRequest) (*reminder.Reminder, error) {
	due := ""
	if req.DueDate != nil {
		due = req.DueDate.String()
	}
	if err := utils.Required("title", req.Title, "dueDate", due); err != nil {
		return nil, err
	}
	req.ApplyDefaults()

	r, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	s.invalidate(userID, 0)
	return r, nil
}

func (s *ReminderService) UpdateReminder(ctx context.Context, userID string, id int64, req *reminder.UpdateReminderRequest) (*reminder.Reminder, error) {
	r, err := s.repo.Update(ctx, userID, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID, id)
	return r, nil
}

func (s *ReminderService) DeleteReminder(ctx context.Context, userID string, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(userID, id)
	return nil
}

func (s *ReminderService) CompleteReminder(ctx context.Context, userID string, id int64) (*reminder.Reminder, error) {
	r, err := s.repo.Complete(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(userID, id)
	return r, nil
}

// invalidate drops every cached list page for the user and, when id > 0, the item itself.
func (s *ReminderService) invalidate(userID string, id int64) {
	if s.cache == nil {
		return
	}
	s.genMu.Lock()
	s.generations[userID]++
	removed := s.cache.DeletePrefix(reminderListPrefix(userID))
	if id > 0 && s.cache.Delete(reminderKey(userID, id)) {
		removed++
	}
	s.genMu.Unlock()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "reminder_id": id, "removed": removed}).Debug("reminder cache invalidated")
	}
}
