package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/cache"
	"github.com/dmitrijs2005/standup/internal/server/calendar"
	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
)

// TeamService builds the "latest standup per member" view.
type TeamService struct {
	repomanager repomanager.RepositoryManager
	calendar    *calendar.Calendar
	cache       cache.SnapshotCache
	cacheTTL    time.Duration
	logger      logging.Logger
}

// NewTeamService returns a TeamService. A nil cache or a non-positive ttl
// disables caching.
func NewTeamService(m repomanager.RepositoryManager, cal *calendar.Calendar, c cache.SnapshotCache, ttl time.Duration, logger logging.Logger) *TeamService {
	if c == nil || ttl <= 0 {
		c = cache.NopCache{}
	}
	return &TeamService{
		repomanager: m,
		calendar:    cal,
		cache:       c,
		cacheTTL:    ttl,
		logger:      logger.With("module", "team"),
	}
}

func (s *TeamService) period(filter models.TeamFilter) calendar.Period {
	switch filter {
	case models.TeamToday:
		return s.calendar.Today()
	case models.TeamYesterday:
		return s.calendar.Yesterday()
	default:
		return s.calendar.LastNDays(7)
	}
}

// Snapshot returns, for every user with at least one standup in the filter's
// window, that user's most recent one. Order is unspecified.
func (s *TeamService) Snapshot(ctx context.Context, filter models.TeamFilter) ([]*models.TeamEntry, error) {
	filter = models.ParseTeamFilter(string(filter))

	// the generation is read before the store so a write landing in between
	// leaves this snapshot under a key that is already stale
	useCache := true
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn(ctx, "snapshot cache read failed", "error", err)
		useCache = false
	}
	key := fmt.Sprintf("%s:%s:%d", filter, s.calendar.DayKey(s.calendar.Now()), gen)

	if useCache {
		if cached, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn(ctx, "snapshot cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	p := s.period(filter)
	all, err := s.repomanager.Submissions().ListInRange(ctx, p.Start, p.End)
	if err != nil {
		s.logger.Error(ctx, "storage failure", "op", "team_snapshot", "error", err)
		return nil, common.ErrorInternal
	}

	result := latestPerUser(all)

	if useCache {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn(ctx, "snapshot cache write failed", "key", key, "error", err)
		}
	}
	return result, nil
}

// latestPerUser keeps the newest entry per user; on equal timestamps the
// first one seen wins.
func latestPerUser(entries []*models.TeamEntry) []*models.TeamEntry {
	latest := make(map[string]*models.TeamEntry)
	order := make([]string, 0)
	for _, e := range entries {
		cur, ok := latest[e.UserID]
		if !ok {
			order = append(order, e.UserID)
			latest[e.UserID] = e
			continue
		}
		if e.CreatedAt.After(cur.CreatedAt) {
			latest[e.UserID] = e
		}
	}

	result := make([]*models.TeamEntry, 0, len(order))
	for _, id := range order {
		result = append(result, latest[id])
	}
	return result
}
