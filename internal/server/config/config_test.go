package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, StoragePostgres, c.StorageBackend)
	assert.Equal(t, "Pacific/Auckland", c.TimeZone)
	assert.Empty(t, c.RedisURL)
	assert.Equal(t, 30*time.Second, c.SnapshotCacheTTL)
	assert.Equal(t, 10*time.Second, c.HealthProbeInterval)
	assert.NoError(t, c.Validate())
}

func TestParseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":             ":8080",
		"storage":               "memory",
		"timezone":              "UTC",
		"snapshot_cache_ttl":    "1m",
		"health_probe_interval": 2000000000,
		"allow_origins":         []string{"https://standup.example.com"},
		"log_dev":               true,
	})

	t.Run("overlays present fields only", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		want := defaults()
		want.HTTPAddr = ":8080"
		want.StorageBackend = StorageMemory
		want.TimeZone = "UTC"
		want.SnapshotCacheTTL = time.Minute
		want.HealthProbeInterval = 2 * time.Second
		want.AllowOrigins = []string{"https://standup.example.com"}
		want.LogDev = true
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("no file flag leaves config alone", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-a", ":1"}))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	})

	t.Run("bad duration", func(t *testing.T) {
		p := writeTempJSON(t, map[string]any{"snapshot_cache_ttl": "often"})
		require.Error(t, parseJSON(defaults(), []string{"-c", p}))
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := defaults()
	err := applyEnv(cfg, envMap(map[string]string{
		"PORT":                  "8081",
		"STANDUP_STORAGE":       "memory",
		"DATABASE_DSN":          "postgres://db/standup",
		"REDIS_URL":             "redis://cache:6379/0",
		"CORS_ORIGINS":          " https://a.example.com, ,https://b.example.com ",
		"LOG_DEV":               "1",
		"SNAPSHOT_CACHE_TTL":    "45s",
		"HEALTH_PROBE_INTERVAL": "3s",
	}))
	require.NoError(t, err)

	want := defaults()
	want.HTTPAddr = ":8081"
	want.StorageBackend = StorageMemory
	want.DatabaseDSN = "postgres://db/standup"
	want.RedisURL = "redis://cache:6379/0"
	want.AllowOrigins = []string{"https://a.example.com", "https://b.example.com"}
	want.LogDev = true
	want.SnapshotCacheTTL = 45 * time.Second
	want.HealthProbeInterval = 3 * time.Second
	assert.Empty(t, cmp.Diff(want, cfg))

	// explicit address beats PORT
	cfg = defaults()
	require.NoError(t, applyEnv(cfg, envMap(map[string]string{"PORT": "1", "STANDUP_HTTP_ADDR": "127.0.0.1:2"})))
	assert.Equal(t, "127.0.0.1:2", cfg.HTTPAddr)

	require.Error(t, applyEnv(defaults(), envMap(map[string]string{"SNAPSHOT_CACHE_TTL": "x"})))
}

func TestParseFlags(t *testing.T) {
	cfg := defaults()
	args := []string{
		"-c", "ignored.json",
		"-a", "127.0.0.1:9090", "-g", ":6000", "-s", "memory", "-d", "db",
		"-tz", "Europe/Riga", "-r", "redis://r:6379/1", "-cache-ttl", "5s",
		"-cors", "https://x.example.com,https://y.example.com",
		"-log-level", "debug", "-log-dev", "-probe-interval", "1s",
		"-unknown", "value",
	}
	require.NoError(t, parseFlags(cfg, args))

	want := &Config{
		HTTPAddr:            "127.0.0.1:9090",
		GRPCAddr:            ":6000",
		StorageBackend:      StorageMemory,
		DatabaseDSN:         "db",
		TimeZone:            "Europe/Riga",
		RedisURL:            "redis://r:6379/1",
		SnapshotCacheTTL:    5 * time.Second,
		AllowOrigins:        []string{"https://x.example.com", "https://y.example.com"},
		LogLevel:            "debug",
		LogDev:              true,
		HealthProbeInterval: time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))

	require.Error(t, parseFlags(defaults(), []string{"-cache-ttl", "soon"}))
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.StorageBackend = "sqlite"
	assert.Error(t, c.Validate())

	c = defaults()
	c.DatabaseDSN = ""
	assert.Error(t, c.Validate())

	c.StorageBackend = StorageMemory
	assert.NoError(t, c.Validate())

	c.HealthProbeInterval = 0
	assert.Error(t, c.Validate())
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"http_addr": ":7000", "grpc_addr": ":7001", "storage": "memory"})

	orig := lookupEnv
	lookupEnv = envMap(map[string]string{"STANDUP_GRPC_ADDR": ":7101"})
	t.Cleanup(func() { lookupEnv = orig })

	cfg, err := LoadConfig([]string{"-c", path, "-a", ":7200"})
	require.NoError(t, err)
	assert.Equal(t, ":7200", cfg.HTTPAddr)
	assert.Equal(t, ":7101", cfg.GRPCAddr)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)

	_, err = LoadConfig([]string{"-s", "mongo"})
	require.Error(t, err)
}
