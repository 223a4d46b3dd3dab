package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/standup/internal/client/cli"
	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server"
	"github.com/dmitrijs2005/standup/internal/server/config"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The terminal is the session; only errors are logged.
	logger, err := logging.Init("error", cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	core, err := server.NewCore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = core.Close() }()

	app := cli.NewApp(core.Ledger, core.Team, core.Users, core.Calendar.Location())
	app.Run(ctx)

}
