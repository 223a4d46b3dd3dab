package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/calendar"
	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/standup/internal/server/repositories/submissions"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	clock   *clockwork.FakeClock
	cal     *calendar.Calendar
	manager repomanager.RepositoryManager
	logs    *observer.ObservedLogs
	logger  logging.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 10, 0, 0, 0, loc))
	core, logs := observer.New(zapcore.DebugLevel)
	return &fixture{
		clock:   clock,
		cal:     calendar.New(clock, loc),
		manager: repomanager.NewMemoryRepositoryManager(),
		logs:    logs,
		logger:  logging.NewZapLogger(zap.New(core)),
	}
}

func (f *fixture) ledger() *LedgerService {
	return NewLedgerService(f.manager, f.cal, nil, f.logger)
}

func (f *fixture) addUser(t *testing.T, name string) string {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), UserName: name, Email: name + "@example.com", CreatedAt: f.clock.Now()}
	_, err := f.manager.Users().Create(context.Background(), u)
	require.NoError(t, err)
	return u.ID
}

// daysAgo is 10:00 local time n days before the fixture's today.
func (f *fixture) daysAgo(n int) time.Time {
	return f.cal.StartOfToday().AddDate(0, 0, -n).Add(10 * time.Hour)
}

// stubManager lets a test swap the submissions repository.
type stubManager struct {
	repomanager.RepositoryManager
	subs submissions.Repository
}

func (m *stubManager) Submissions() submissions.Repository { return m.subs }

var errStorage = errors.New("connection reset by peer")

// brokenSubmissions fails every call.
type brokenSubmissions struct{}

func (brokenSubmissions) Insert(context.Context, *models.Submission, string) error { return errStorage }
func (brokenSubmissions) FindByUserInRange(context.Context, string, time.Time, time.Time) (*models.Submission, error) {
	return nil, errStorage
}
func (brokenSubmissions) GetOwned(context.Context, string, string) (*models.Submission, error) {
	return nil, errStorage
}
func (brokenSubmissions) UpdateText(context.Context, *models.Submission, time.Time, time.Time) error {
	return errStorage
}
func (brokenSubmissions) ListByUser(context.Context, string, *time.Time) ([]*models.Submission, error) {
	return nil, errStorage
}
func (brokenSubmissions) ListInRange(context.Context, time.Time, time.Time) ([]*models.TeamEntry, error) {
	return nil, errStorage
}
func (brokenSubmissions) DeleteAll(context.Context) error { return errStorage }

// memCache is a map-backed snapshot cache that counts invalidations. Like
// the Redis one it never drops entries, it only moves the generation.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]*models.TeamEntry
	gen         int64
	invalidated int
	err         error
	dataErr     error
}

func newMemCache() *memCache { return &memCache{data: map[string][]*models.TeamEntry{}} }

func (c *memCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return c.gen, nil
}

func (c *memCache) Get(_ context.Context, key string) ([]*models.TeamEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := errors.Join(c.err, c.dataErr); err != nil {
		return nil, false, err
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, entries []*models.TeamEntry, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := errors.Join(c.err, c.dataErr); err != nil {
		return err
	}
	c.data[key] = entries
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	if c.err != nil {
		return c.err
	}
	c.gen++
	return nil
}
