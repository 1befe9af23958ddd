package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/summary"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/utils"
)

const (
	generatedSummaryTTL = time.Hour
	summaryTTL          = time.Hour
	summaryListTTL      = 10 * time.Minute
)

// generatedSummaryKey identifies a summarization by content hash and normalized options,
// so equivalent requests share one cache entry.
func generatedSummaryKey(content string, opts summary.Options) string {
	optsJSON, _ := json.Marshal(opts.Normalized())
	return "summary:" + strconv.FormatUint(xxhash.Sum64String(content), 36) + ":" + string(optsJSON)
}

func summaryKey(userID string, id int64) string { return fmt.Sprintf("summary:%s:%d", userID, id) }

func summaryListKey(userID string, page, limit int) string {
	return fmt.Sprintf("summaries:%s:%d:%d", userID, page, limit)
}

type SummaryService struct {
	repo       ports.SummaryRepository
	summarizer ports.Summarizer
	cache      ports.Cache
	sf         singleflight.Group
	logger     *logrus.Logger
}

func NewSummaryService(repo ports.SummaryRepository, summarizer ports.Summarizer, cache ports.Cache, logger *logrus.Logger) *SummaryService {
	return &SummaryService{repo: repo, summarizer: summarizer, cache: cache, logger: logger}
}

var _ ports.SummaryService = (*SummaryService)(nil)

// Generate summarizes req.Content. Results are cached for an hour and concurrent
// identical requests share one summarization.
func (s *SummaryService) Generate(ctx context.Context, req *summary.GenerateRequest) (*summary.Generated, bool, error) {
	if err := utils.Required("content", req.Content); err != nil {
		return nil, false, err
	}
	if err := utils.MaxLength("content", req.Content, summary.MaxContentLength); err != nil {
		return nil, false, err
	}

	opts := req.Options.Normalized()
	key := generatedSummaryKey(req.Content, opts)
	g, cached, err := fetchCached(ctx, s.cache, &s.sf, key, generatedSummaryTTL,
		func(ctx context.Context) (*summary.Generated, error) {
			start := time.Now()
			g, err := s.summarizer.Summarize(ctx, req.Content, opts)
			if err != nil {
				return nil, fmt.Errorf("summarization failed: %w", err)
			}
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{
					"content_length": len(req.Content),
					"length":         opts.Length,
					"duration_ms":    time.Since(start).Milliseconds(),
				}).Info("summary generated")
			}
			return g, nil
		})
	return g, cached, err
}

func (s *SummaryService) GetSummary(ctx context.Context, userID string, id int64) (*summary.Summary, bool, error) {
	return fetchCached(ctx, s.cache, &s.sf, summaryKey(userID, id), summaryTTL,
		func(ctx context.Context) (*summary.Summary, error) {
			return s.repo.GetByID(ctx, userID, id)
		})
}

func (s *SummaryService) ListSummaries(ctx context.Context, userID string, page, limit int) ([]*summary.Summary, bool, error) {
	if page < 1 {
		page = 1
	}
	return fetchCached(ctx, s.cache, &s.sf, summaryListKey(userID, page, limit), summaryListTTL,
		func(ctx context.Context) ([]*summary.Summary, error) {
			return s.repo.List(ctx, userID, limit, (page-1)*limit)
		})
}
