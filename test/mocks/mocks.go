package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/auth"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/reminder"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/summary"
	"github.com/avatarctic/study-assistant-api/internal/core/domain/user"
)

// ReminderRepositoryMock is a lightweight mock for ReminderRepository
type ReminderRepositoryMock struct {
	ListFn     func(ctx context.Context, userID string, limit, offset int) (*reminder.Page, error)
	ListAllFn  func(ctx context.Context, userID string) ([]*reminder.Reminder, error)
	GetByIDFn  func(ctx context.Context, userID string, id int64) (*reminder.Reminder, error)
	CreateFn   func(ctx context.Context, userID string, req *reminder.CreateReminderRequest) (*reminder.Reminder, error)
	UpdateFn   func(ctx context.Context, userID string, id int64, req *reminder.UpdateReminderRequest) (*reminder.Reminder, error)
	DeleteFn   func(ctx context.Context, userID string, id int64) error
	CompleteFn func(ctx context.Context, userID string, id int64) (*reminder.Reminder, error)
}

func (m *ReminderRepositoryMock) List(ctx context.Context, userID string, limit, offset int) (*reminder.Page, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, limit, offset)
	}
	return &reminder.Page{Items: []*reminder.Reminder{}}, nil
}
func (m *ReminderRepositoryMock) ListAll(ctx context.Context, userID string) ([]*reminder.Reminder, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, userID)
	}
	return []*reminder.Reminder{}, nil
}
func (m *ReminderRepositoryMock) GetByID(ctx context.Context, userID string, id int64) (*reminder.Reminder, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}
func (m *ReminderRepositoryMock) Create(ctx context.Context, userID string, req *reminder.CreateReminderRequest) (*reminder.Reminder, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, req)
	}
	return &reminder.Reminder{ID: 1, UserID: userID, Title: req.Title, DueDate: req.DueDate}, nil
}
func (m *ReminderRepositoryMock) Update(ctx context.Context, userID string, id int64, req *reminder.UpdateReminderRequest) (*reminder.Reminder, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, id, req)
	}
	r := &reminder.Reminder{ID: id, UserID: userID}
	req.Apply(r)
	return r, nil
}
func (m *ReminderRepositoryMock) Delete(ctx context.Context, userID string, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	return nil
}
func (m *ReminderRepositoryMock) Complete(ctx context.Context, userID string, id int64) (*reminder.Reminder, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, userID, id)
	}
	return &reminder.Reminder{ID: id, UserID: userID, Completed: true}, nil
}

// SummaryRepositoryMock is a lightweight mock for SummaryRepository
type SummaryRepositoryMock struct {
	GetByIDFn func(ctx context.Context, userID string, id int64) (*summary.Summary, error)
	ListFn    func(ctx context.Context, userID string, limit, offset int) ([]*summary.Summary, error)
}

func (m *SummaryRepositoryMock) GetByID(ctx context.Context, userID string, id int64) (*summary.Summary, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}
func (m *SummaryRepositoryMock) List(ctx context.Context, userID string, limit, offset int) ([]*summary.Summary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, limit, offset)
	}
	return []*summary.Summary{}, nil
}

// SummarizerMock is a lightweight mock for Summarizer
type SummarizerMock struct {
	SummarizeFn func(ctx context.Context, content string, opts summary.Options) (*summary.Generated, error)
}

func (m *SummarizerMock) Summarize(ctx context.Context, content string, opts summary.Options) (*summary.Generated, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, content, opts)
	}
	return &summary.Generated{Summary: summary.Text{Text: content}}, nil
}

// UserRepositoryMock is a lightweight mock for UserRepository
type UserRepositoryMock struct {
	GetByIDFn  func(ctx context.Context, id int64) (*user.User, error)
	UpdateFn   func(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error)
	GetStatsFn func(ctx context.Context, id int64) (*user.Stats, error)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *UserRepositoryMock) Update(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, req)
	}
	u := &user.User{ID: id}
	req.Apply(u)
	return u, nil
}
func (m *UserRepositoryMock) GetStats(ctx context.Context, id int64) (*user.Stats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 99, 100, time.Now().Add(time.Minute), nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	RegisterFn      func(ctx context.Context, req *auth.RegisterRequest) (*auth.Session, error)
	LoginFn         func(ctx context.Context, req *auth.LoginRequest) (*auth.Session, error)
	LogoutFn        func(ctx context.Context, userID string) error
	MeFn            func(ctx context.Context, userID string) (*user.User, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *AuthServiceMock) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.Session, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &auth.Session{User: &user.User{ID: 1, Name: req.Name, Email: req.Email}, Token: "token"}, nil
}
func (m *AuthServiceMock) Login(ctx context.Context, req *auth.LoginRequest) (*auth.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return &auth.Session{User: &user.User{ID: 1, Email: req.Email}, Token: "token"}, nil
}
func (m *AuthServiceMock) Logout(ctx context.Context, userID string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, userID)
	}
	return nil
}
func (m *AuthServiceMock) Me(ctx context.Context, userID string) (*user.User, error) {
	if m.MeFn != nil {
		return m.MeFn(ctx, userID)
	}
	return &user.User{ID: 1}, nil
}
func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, domain.ErrUnauthorized
}

// HostMemoryReaderMock is a lightweight mock for HostMemoryReader
type HostMemoryReaderMock struct {
	ReadFn func(ctx context.Context) (memory.HostMemory, error)
}

func (m *HostMemoryReaderMock) Read(ctx context.Context) (memory.HostMemory, error) {
	if m.ReadFn != nil {
		return m.ReadFn(ctx)
	}
	return memory.HostMemory{}, memory.ErrTelemetryUnavailable
}

// SignalSinkMock records every emitted signal.
type SignalSinkMock struct {
	mu      sync.Mutex
	Signals []memory.Signal
}

func (m *SignalSinkMock) Emit(s memory.Signal) {
	m.mu.Lock()
	m.Signals = append(m.Signals, s)
	m.mu.Unlock()
}

func (m *SignalSinkMock) Snapshot() []memory.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]memory.Signal(nil), m.Signals...)
}

// HealthCheckerMock is a lightweight mock for HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}
