package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/cache"
	"github.com/dmitrijs2005/standup/internal/server/calendar"
	"github.com/dmitrijs2005/standup/internal/server/config"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/standup/internal/server/services"
	"github.com/jonboulle/clockwork"
)

// Core is the ledger wired to its storage backend. The server, the CLI and
// the seed tool all build one.
type Core struct {
	Config   *config.Config
	Logger   logging.Logger
	Clock    clockwork.Clock
	Store    repomanager.RepositoryManager
	Calendar *calendar.Calendar
	Users    *services.UserService
	Ledger   *services.LedgerService
	Team     *services.TeamService
	// Snapshots is the shared team snapshot cache, cache.NopCache when disabled.
	Snapshots cache.SnapshotCache

	closers []func() error
}

func NewCore(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Core, error) {
	clock := clockwork.NewRealClock()
	cal, err := calendar.Load(clock, cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	c := &Core{Config: cfg, Logger: logger, Clock: clock, Calendar: cal}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Store = store
	c.closers = append(c.closers, store.Close)

	var snapshots cache.SnapshotCache = cache.NopCache{}
	c.Snapshots = snapshots
	if cfg.RedisURL != "" {
		rdb, err := cache.DialRedis(cfg.RedisURL)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		rc := cache.NewRedisSnapshotCache(rdb)
		c.closers = append(c.closers, rc.Close)
		snapshots = rc
		c.Snapshots = rc
		logger.Info(ctx, "snapshot cache enabled", "ttl", cfg.SnapshotCacheTTL)
	}

	c.Users = services.NewUserService(store, clock, logger)
	c.Ledger = services.NewLedgerService(store, cal, snapshots, logger)
	c.Team = services.NewTeamService(store, cal, snapshots, cfg.SnapshotCacheTTL, logger)
	return c, nil
}

func openStore(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {
	if cfg.StorageBackend == config.StorageMemory {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	m, err := repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}
	return m, nil
}

// Close releases the store and the cache, in reverse order of opening.
func (c *Core) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
