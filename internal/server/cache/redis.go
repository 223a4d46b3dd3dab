package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "standup:team:"
	snapshotPrefix = keyPrefix + "snap:"
	generationKey  = keyPrefix + "gen"
)

type RedisSnapshotCache struct {
	rdb *redis.Client
}

func NewRedisSnapshotCache(rdb *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{rdb: rdb}
}

// DialRedis parses a redis:// URL. The connection is established lazily.
func DialRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return redis.NewClient(opt), nil
}

// Generation reads the invalidation counter; a missing counter is 0.
func (c *RedisSnapshotCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]*models.TeamEntry, bool, error) {
	raw, err := c.rdb.Get(ctx, snapshotPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entries []*models.TeamEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return entries, true, nil
}

func (c *RedisSnapshotCache) Set(ctx context.Context, key string, entries []*models.TeamEntry, ttl time.Duration) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return c.rdb.Set(ctx, snapshotPrefix+key, raw, ttl).Err()
}

// Invalidate bumps the generation. Snapshots of older generations are no
// longer addressed and expire with their TTL.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}

func (c *RedisSnapshotCache) Close() error {
	return c.rdb.Close()
}
