package retriever

import (
	"context"
	"fmt"
	"math"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/llm"
)

// embeds a query and asks the store for its nearest essays
type Engine struct {
	embedder llm.Embedder
	store    VectorStore
}

func NewEngine(embedder llm.Embedder, store VectorStore) *Engine {
	return &Engine{embedder: embedder, store: store}
}

// returns the store's results unchanged. embedding and store errors are
// wrapped so errors.Is still matches llm.ErrEmbedding and ErrStoreUnavailable.
func (e *Engine) Retrieve(ctx context.Context, q Query) ([]essays.SearchResult, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidQuery, q.Limit)
	}

	if math.IsNaN(q.Threshold) || q.Threshold < -1 || q.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold must be within [-1, 1], got %v", ErrInvalidQuery, q.Threshold)
	}

	vector, err := e.embedder.GenerateEmbedding(ctx, q.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := e.store.Search(ctx, vector, q.Threshold, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search essays: %w", err)
	}

	if results == nil {
		results = []essays.SearchResult{}
	}

	return results, nil
}
