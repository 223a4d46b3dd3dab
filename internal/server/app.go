// Package server wires the ledger into runnable processes: the HTTP API, the
// gRPC health endpoint and their shared storage.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/config"
	"github.com/dmitrijs2005/standup/internal/server/httpapi"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/standup/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	core       *Core
	logger     logging.Logger
	httpServer *http.Server
	health     *gs.HealthServer
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	core, err := NewCore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}
	h := httpapi.NewHandler(core.Ledger, core.Team, core.Users, core.Store, logger)

	return &App{
		core:   core,
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(h, cfg.AllowOrigins),
			ReadHeaderTimeout: 5 * time.Second,
		},
		health: gs.NewHealthServer(cfg.GRPCAddr, core.Store, cfg.HealthProbeInterval, logger),
	}, nil
}

// Run serves HTTP and gRPC until ctx is cancelled or a termination signal
// arrives, then shuts both down and closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "timezone", app.core.Config.TimeZone, "storage", app.core.Config.StorageBackend)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(gctx, "Starting HTTP server", "address", app.httpServer.Addr)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(gctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.httpServer.Shutdown(sctx)
	})

	g.Go(func() error {
		return app.health.Run(gctx)
	})

	err := g.Wait()
	if cerr := app.core.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage", "error", cerr)
	}
	return err
}
