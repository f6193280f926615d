package retriever

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"codeberg.org/essayinsights/server/essays"
)

const driverPostgres = "postgres"

// searches the essays table through the match_essays SQL function
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Search(ctx context.Context, vector []float32, threshold float64, limit int) (results []essays.SearchResult, err error) {
	start := time.Now()
	defer func() { observeSearch(driverPostgres, start, len(results), err) }()

	rows, err := s.pool.Query(ctx, matchEssaysQuery, pgvector.NewVector(vector), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute search query: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	results = make([]essays.SearchResult, 0, limit)

	for rows.Next() {
		var result essays.SearchResult
		err := rows.Scan(
			&result.ID,
			&result.Title,
			&result.URL,
			&result.Content,
			&result.Similarity,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan row: %w", ErrStoreUnavailable, err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating rows: %w", ErrStoreUnavailable, err)
	}

	return results, nil
}
