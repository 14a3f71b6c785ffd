package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"streetnetwork.app/kinship/common/logger"
	"streetnetwork.app/kinship/core/config"
	"streetnetwork.app/kinship/core/db"
)

const usage = `usage: migrate [command] [args]

commands:
  up        apply all pending migrations (default)
  down      roll back the latest migration
  redo      roll back and reapply the latest migration
  status    print the status of every migration
  version   print the current schema version
  up-to N   apply migrations up to version N
  down-to N roll back to version N
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	slog.InfoContext(ctx, "running migrations", "command", command)
	if err := database.Migrate(ctx, command, args...); err != nil {
		slog.ErrorContext(ctx, "migration failed", "command", command, "error", err)
		database.Close()
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migrations finished", "command", command)
}
