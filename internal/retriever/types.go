package retriever

import (
	"context"
	"errors"

	"codeberg.org/essayinsights/server/essays"
)

var (
	// the store could not be reached or failed while answering
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// the query violates a precondition (limit, threshold range)
	ErrInvalidQuery = errors.New("invalid query")
)

// nearest-neighbour search over essay embeddings.
// implementations return results with similarity >= threshold, at most limit of
// them, ordered by similarity descending then id ascending. no match is an
// empty slice and a nil error.
type VectorStore interface {
	Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]essays.SearchResult, error)
}

type Query struct {
	Text      string
	Limit     int
	Threshold float64
}
