package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/logger"
	"codeberg.org/essayinsights/server/internal/storage"
)

func main() {
	flags := config.ParseBackfillFlags(os.Args[1:])

	// load environment variables
	cfg, err := config.LoadBackfillEnvironment()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, flags)
	stop()

	if err != nil {
		logger.FatalErr(err, "backfill failed")
	}
}

func run(ctx context.Context, cfg *config.Config, flags config.Flags) error {
	// connect to database
	db, err := storage.NewClient(ctx, cfg.SupabaseConnString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("connected to database")

	if flags.Migrate {
		if err := db.ApplySchema(ctx, cfg.Embedder.Dimensions); err != nil {
			return err
		}

		logger.Info("applied schema", "dimensions", cfg.Embedder.Dimensions)
	}

	embedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	if closer, ok := embedder.(io.Closer); ok {
		defer closer.Close() //nolint:errcheck // best-effort cleanup on exit
	}

	backfiller := NewBackfiller(essays.NewRepository(db.Pool()), embedder, flags)

	stats, err := backfiller.Run(ctx)
	if err != nil {
		logger.Warn("backfill stopped early", "embedded", stats.Embedded, "written", stats.Written)
		return err
	}

	logger.Info("backfill complete",
		"embedded", stats.Embedded,
		"written", stats.Written,
		"batches", stats.Batches,
		"dry_run", flags.DryRun,
	)

	return nil
}
