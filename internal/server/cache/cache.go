// Package cache holds team snapshots between reads. The store stays the
// source of truth; writers invalidate every snapshot.
package cache

import (
	"context"
	"time"

	"github.com/dmitrijs2005/standup/internal/server/models"
)

// SnapshotCache stores snapshots under caller keys. Readers fold the current
// generation into their key before querying the store, and Invalidate moves
// to a new generation, so a snapshot computed before a write can only land
// under a key nobody reads any more.
type SnapshotCache interface {
	Generation(ctx context.Context) (int64, error)
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (entries []*models.TeamEntry, ok bool, err error)
	Set(ctx context.Context, key string, entries []*models.TeamEntry, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Generation(context.Context) (int64, error) { return 0, nil }

func (NopCache) Get(context.Context, string) ([]*models.TeamEntry, bool, error) {
	return nil, false, nil
}

func (NopCache) Set(context.Context, string, []*models.TeamEntry, time.Duration) error { return nil }

func (NopCache) Invalidate(context.Context) error { return nil }
