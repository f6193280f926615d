package main

import (
	"context"
	"fmt"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/logger"
)

// the repository operations the backfill needs
type EssayStore interface {
	Count(ctx context.Context) (int, error)
	ListEmbeddingSources(ctx context.Context, all bool, afterID int64, limit int) ([]essays.EmbeddingSource, error)
	UpdateEmbeddingsBatch(ctx context.Context, updates []essays.EmbeddingUpdate) error
}

// embeds essays in id order and writes the vectors back batch by batch
type Backfiller struct {
	store    EssayStore
	embedder llm.Embedder
	flags    config.Flags
}

type Stats struct {
	Embedded int
	Written  int
	Batches  int
}

func NewBackfiller(store EssayStore, embedder llm.Embedder, flags config.Flags) *Backfiller {
	if flags.BatchSize <= 0 {
		flags.BatchSize = config.DefaultBackfillFlags().BatchSize
	}

	return &Backfiller{store: store, embedder: embedder, flags: flags}
}

// a failed batch stops the run; batches already committed stay written
func (b *Backfiller) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	total, err := b.store.Count(ctx)
	if err != nil {
		return stats, err
	}

	logger.Info("starting backfill",
		"essays", total,
		"all", b.flags.All,
		"batch_size", b.flags.BatchSize,
		"model", b.embedder.Model(),
	)

	var afterID int64

	for {
		sources, err := b.store.ListEmbeddingSources(ctx, b.flags.All, afterID, b.flags.BatchSize)
		if err != nil {
			return stats, err
		}

		if len(sources) == 0 {
			return stats, nil
		}

		afterID = sources[len(sources)-1].ID

		texts := make([]string, len(sources))
		for i, s := range sources {
			texts[i] = llm.Truncate(s.Text(), b.embedder.MaxInputChars())
		}

		vectors, err := b.embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("failed to embed essays %d-%d: %w", sources[0].ID, afterID, err)
		}

		stats.Embedded += len(vectors)
		stats.Batches++

		if !b.flags.DryRun {
			updates := make([]essays.EmbeddingUpdate, len(sources))
			for i, s := range sources {
				updates[i] = essays.EmbeddingUpdate{ID: s.ID, Embedding: vectors[i]}
			}

			if err := b.store.UpdateEmbeddingsBatch(ctx, updates); err != nil {
				return stats, err
			}

			stats.Written += len(updates)
		}

		logger.Info("processed batch", "batch", stats.Batches, "last_id", afterID, "embedded", stats.Embedded)

		if len(sources) < b.flags.BatchSize {
			return stats, nil
		}
	}
}
