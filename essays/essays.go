package essays

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/essayinsights/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// returns one page of essays ordered by id
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	rows, err := r.db.Query(ctx, queryList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list essays: %w", err)
	}
	defer rows.Close()

	// initialize to empty so JSON encodes [] rather than null
	summaries := []Summary{}

	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.URL); err != nil {
			return nil, fmt.Errorf("failed to scan essay: %w", err)
		}

		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating essays: %w", err)
	}

	return summaries, nil
}

// returns the total number of essays
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count essays: %w", err)
	}

	return count, nil
}

// returns up to limit essays with id > afterID; when all is false only essays
// without an embedding are returned
func (r *Repository) ListEmbeddingSources(ctx context.Context, all bool, afterID int64, limit int) ([]EmbeddingSource, error) {
	rows, err := r.db.Query(ctx, queryEmbeddingSources, all, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select essays for embedding: %w", err)
	}
	defer rows.Close()

	var sources []EmbeddingSource

	for rows.Next() {
		var s EmbeddingSource
		if err := rows.Scan(&s.ID, &s.Title, &s.Content); err != nil {
			return nil, fmt.Errorf("failed to scan essay: %w", err)
		}

		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating essays: %w", err)
	}

	return sources, nil
}

// writes embeddings for several essays in a single transaction
func (r *Repository) UpdateEmbeddingsBatch(ctx context.Context, updates []EmbeddingUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op once commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, u := range updates {
		batch.Queue(queryUpdateEmbedding, pgvector.NewVector(u.Embedding), u.ID)
	}

	br := tx.SendBatch(ctx, batch)

	for _, u := range updates {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to update embedding for essay %d: %w", u.ID, err)
		}
	}

	// must close batch results before committing, otherwise connection is still "busy"
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
