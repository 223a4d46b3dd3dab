package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/standup/internal/flagx"
)

var ownFlags = []string{
	"-a", "-g", "-s", "-d", "-tz", "-r", "-cache-ttl", "-cors", "-log-level", "-log-dev", "-probe-interval",
}

// parseFlags overlays the server flags found in args.
//
//	-a string               HTTP bind address (":3000")
//	-g string               gRPC health bind address (":50051")
//	-s string               storage backend: postgres | memory
//	-d string               PostgreSQL DSN
//	-tz string              IANA timezone for day boundaries
//	-r string               Redis URL for the team snapshot cache
//	-cache-ttl duration     snapshot cache TTL
//	-cors string            comma separated allowed origins
//	-log-level string       debug | info | warn | error
//	-log-dev                development logging
//	-probe-interval duration  storage health probe interval
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("standup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TimeZone, "tz", config.TimeZone, "timezone")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.DurationVar(&config.SnapshotCacheTTL, "cache-ttl", config.SnapshotCacheTTL, "snapshot cache TTL")
	cors := fs.String("cors", strings.Join(config.AllowOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.BoolVar(&config.LogDev, "log-dev", config.LogDev, "development logging")
	fs.DurationVar(&config.HealthProbeInterval, "probe-interval", config.HealthProbeInterval, "health probe interval")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return err
	}

	config.AllowOrigins = splitList(*cors)
	return nil
}
