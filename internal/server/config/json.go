package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/standup/internal/flagx"
	"github.com/dmitrijs2005/standup/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept "30s"
// or integer nanoseconds. Absent fields keep their current value.
type JsonConfig struct {
	HTTPAddr            *string         `json:"http_addr"`
	GRPCAddr            *string         `json:"grpc_addr"`
	StorageBackend      *string         `json:"storage"`
	DatabaseDSN         *string         `json:"database_dsn"`
	TimeZone            *string         `json:"timezone"`
	RedisURL            *string         `json:"redis_url"`
	SnapshotCacheTTL    *timex.Duration `json:"snapshot_cache_ttl"`
	AllowOrigins        []string        `json:"allow_origins"`
	LogLevel            *string         `json:"log_level"`
	LogDev              *bool           `json:"log_dev"`
	HealthProbeInterval *timex.Duration `json:"health_probe_interval"`
}

// parseJSON overlays the file named by -c/-config, if any.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.TimeZone, c.TimeZone)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.LogLevel, c.LogLevel)
	if c.SnapshotCacheTTL != nil {
		config.SnapshotCacheTTL = c.SnapshotCacheTTL.Duration
	}
	if c.HealthProbeInterval != nil {
		config.HealthProbeInterval = c.HealthProbeInterval.Duration
	}
	if c.AllowOrigins != nil {
		config.AllowOrigins = c.AllowOrigins
	}
	if c.LogDev != nil {
		config.LogDev = *c.LogDev
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
