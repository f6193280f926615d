package config

import (
	"flag"
)

// parses CLI flags for the backfill command
func ParseBackfillFlags(args []string) Flags {
	fs := flag.NewFlagSet("backfill", flag.ExitOnError)
	all := fs.Bool("all", false, "re-embed every essay, not only those without an embedding")
	batch := fs.Int("batch", defaultBatchSize, "number of essays embedded and written per transaction")
	migrate := fs.Bool("migrate", false, "apply the essays schema and match_essays function before backfilling")
	dryRun := fs.Bool("dry-run", false, "embed essays but do not write embeddings back")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	if *batch <= 0 {
		*batch = defaultBatchSize
	}

	return Flags{All: *all, BatchSize: *batch, Migrate: *migrate, DryRun: *dryRun}
}

// returns default flags for the backfill command
func DefaultBackfillFlags() Flags {
	return Flags{BatchSize: defaultBatchSize}
}
