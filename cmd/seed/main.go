package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server"
	"github.com/dmitrijs2005/standup/internal/server/config"
	"github.com/dmitrijs2005/standup/internal/server/seed"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Init(cfg.LogLevel, cfg.LogDev)
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

	users, err := seed.Run(ctx, core.Store, core.Clock, core.Calendar, core.Snapshots, logger)
	if err != nil {
		logger.Error(ctx, "seed failed", "error", err)
		return
	}

	fmt.Println("To log in, enter one of these usernames:")
	for _, u := range users {
		fmt.Printf("- %s\n", u.UserName)
	}

}
