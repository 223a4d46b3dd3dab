package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

var lookupEnv = os.LookupEnv

// applyEnv overlays environment variables. PORT is honoured for platforms
// that only hand out a port number.
func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	if port, ok := lookup("PORT"); ok && port != "" {
		config.HTTPAddr = ":" + port
	}
	str("STANDUP_HTTP_ADDR", &config.HTTPAddr)
	str("STANDUP_GRPC_ADDR", &config.GRPCAddr)
	str("STANDUP_STORAGE", &config.StorageBackend)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("STANDUP_TIMEZONE", &config.TimeZone)
	str("REDIS_URL", &config.RedisURL)
	str("LOG_LEVEL", &config.LogLevel)

	if v, ok := lookup("LOG_DEV"); ok {
		config.LogDev = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		config.AllowOrigins = splitList(v)
	}

	if err := dur("SNAPSHOT_CACHE_TTL", &config.SnapshotCacheTTL); err != nil {
		return err
	}
	return dur("HEALTH_PROBE_INTERVAL", &config.HealthProbeInterval)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
