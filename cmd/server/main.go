// Package main implements the entry point for the folio API server, which
// serves the portfolio records and the Gemini-backed assistant features.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/platform/postgres"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateOnly); err != nil {
		log.Fatalf("folio-api: %v", err)
	}
}

// run loads configuration, prepares the database and either exits after
// migrating or serves until ctx is canceled.
func run(ctx context.Context, migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("model", cfg.LLM.ModelName),
		slog.Bool("lead_capture", cfg.LLM.LeadCapture),
		slog.Bool("rate_limit", cfg.RateLimit.Enabled))

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if migrateOnly {
		appLogger.Info("migrations applied, exiting")
		return db.Close()
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
