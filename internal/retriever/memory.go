package retriever

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/llm"
)

const driverMemory = "memory"

// brute-force cosine search over an in-process corpus
type MemoryStore struct {
	mu     sync.RWMutex
	essays []essays.Essay
}

func NewMemoryStore(corpus []essays.Essay) *MemoryStore {
	return &MemoryStore{essays: corpus}
}

func (s *MemoryStore) Search(ctx context.Context, vector []float32, threshold float64, limit int) (results []essays.SearchResult, err error) {
	start := time.Now()
	defer func() { observeSearch(driverMemory, start, len(results), err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]essays.SearchResult, 0, len(s.essays))

	for _, e := range s.essays {
		if e.Embedding == nil {
			continue
		}

		if len(e.Embedding) != len(vector) {
			return nil, fmt.Errorf("%w: essay %d has %d dimensions, query has %d", ErrStoreUnavailable, e.ID, len(e.Embedding), len(vector))
		}

		scored = append(scored, essays.SearchResult{
			ID:         e.ID,
			Title:      e.Title,
			URL:        e.URL,
			Content:    e.Content,
			Similarity: cosine(vector, e.Embedding),
		})
	}

	return Rank(scored, threshold, limit), nil
}

// returns one page of essays ordered by id, mirroring essays.Repository.List
func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]essays.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]essays.Essay, len(s.essays))
	copy(sorted, s.essays)
	slices.SortFunc(sorted, func(a, b essays.Essay) int { return cmp.Compare(a.ID, b.ID) })

	summaries := []essays.Summary{}
	for i := max(offset, 0); i < len(sorted) && len(summaries) < limit; i++ {
		summaries = append(summaries, essays.Summary{ID: sorted[i].ID, Title: sorted[i].Title, URL: sorted[i].URL})
	}

	return summaries, nil
}

// reads a JSON array of essays; embedding may be omitted and filled later by EmbedMissing
func LoadCorpus(path string) ([]essays.Essay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var corpus []essays.Essay
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	seen := make(map[int64]bool, len(corpus))
	for _, e := range corpus {
		if seen[e.ID] {
			return nil, fmt.Errorf("corpus file has duplicate essay id %d", e.ID)
		}
		seen[e.ID] = true
	}

	return corpus, nil
}

// embeds essays that arrived without a vector, using the same title+content
// text the backfill uses, truncated to the embedder's input limit
func EmbedMissing(ctx context.Context, embedder llm.Embedder, corpus []essays.Essay) error {
	for i := range corpus {
		if corpus[i].Embedding != nil {
			continue
		}

		source := essays.EmbeddingSource{ID: corpus[i].ID, Title: corpus[i].Title, Content: corpus[i].Content}

		vec, err := embedder.GenerateEmbedding(ctx, llm.Truncate(source.Text(), embedder.MaxInputChars()))
		if err != nil {
			return fmt.Errorf("failed to embed essay %d: %w", corpus[i].ID, err)
		}

		corpus[i].Embedding = vec
	}

	return nil
}
