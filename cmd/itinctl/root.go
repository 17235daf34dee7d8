package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary/internal/config"
	"github.com/pkordes/itinerary/internal/repo"
)

// app holds what subcommands share once PersistentPreRunE has run.
type app struct {
	cfg  config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "itinctl",
		Short:         "Operator tooling for the itinerary service",
		Long:          "itinctl applies database migrations and inspects trips directly against Postgres. It reads the same environment variables as the API server.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newMigrateCmd(a), newGapsCmd(a))
	return root
}

// connect loads configuration and opens the database. Subcommands call it
// from their own PreRunE so --help works without a database.
func (a *app) connect(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	pool, err := repo.Connect(ctx, cfg.DatabaseURL, a.log)
	if err != nil {
		return err
	}
	a.pool = pool
	return nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
