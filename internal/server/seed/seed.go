// Package seed resets a store to a small demo team: three users with a
// standup each for today, yesterday and the day before.
package seed

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/cache"
	"github.com/dmitrijs2005/standup/internal/server/calendar"
	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/standup/internal/server/services"
	"github.com/jonboulle/clockwork"
)

type demoUser struct {
	userName string
	email    string
}

var demoUsers = []demoUser{
	{"testuser", "test@example.com"},
	{"johndoe", "john@example.com"},
	{"janedoe", "jane@example.com"},
}

type demoStandup struct {
	daysAgo   int
	yesterday string
	today     string
	blockers  string
}

func demoStandups(userName string) []demoStandup {
	return []demoStandup{
		{0, userName + " worked on setting up the API", userName + " will implement authentication", "None"},
		{1, userName + " designed database schema", userName + " will set up the API", "Waiting for requirements"},
		{2, userName + " reviewed requirements", userName + " will design database schema", "Still unclear on some requirements"},
	}
}

// Run wipes all users and submissions and recreates the demo team in one
// unit of work, then invalidates cached team snapshots once it has
// committed. It returns the created users.
func Run(ctx context.Context, m repomanager.RepositoryManager, clock clockwork.Clock, cal *calendar.Calendar, snapshots cache.SnapshotCache, logger logging.Logger) ([]*models.User, error) {
	logger = logger.With("module", "seed")

	var created []*models.User
	err := m.WithinTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		created = created[:0]

		if err := tx.Submissions().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete submissions: %w", err)
		}
		if err := tx.Users().DeleteAll(ctx); err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		logger.Info(ctx, "store cleared")

		users := services.NewUserService(tx, clock, logger)
		// nothing is visible to readers until commit
		ledger := services.NewLedgerService(tx, cal, cache.NopCache{}, logger)
		now := cal.Now()

		for _, du := range demoUsers {
			u, err := users.Register(ctx, du.userName, du.email)
			if err != nil {
				return fmt.Errorf("register %s: %w", du.userName, err)
			}
			created = append(created, u)

			for _, ds := range demoStandups(u.UserName) {
				at := now.AddDate(0, 0, -ds.daysAgo)
				if _, err := ledger.Import(ctx, u.ID, at, ds.yesterday, ds.today, ds.blockers); err != nil {
					return fmt.Errorf("import standup for %s: %w", u.UserName, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if snapshots != nil {
		if err := snapshots.Invalidate(ctx); err != nil {
			logger.Warn(ctx, "snapshot cache invalidation failed", "error", err)
		}
	}

	logger.Info(ctx, "seed complete", "users", len(created))
	return created, nil
}
