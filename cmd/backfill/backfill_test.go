package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/config"
)

type mockStore struct {
	sources []essays.EmbeddingSource
	written []essays.EmbeddingUpdate
	queries []int64
	writeFn func([]essays.EmbeddingUpdate) error
}

func (m *mockStore) Count(context.Context) (int, error) { return len(m.sources), nil }

func (m *mockStore) ListEmbeddingSources(_ context.Context, _ bool, afterID int64, limit int) ([]essays.EmbeddingSource, error) {
	m.queries = append(m.queries, afterID)

	var out []essays.EmbeddingSource
	for _, s := range m.sources {
		if s.ID > afterID && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateEmbeddingsBatch(_ context.Context, updates []essays.EmbeddingUpdate) error {
	if m.writeFn != nil {
		if err := m.writeFn(updates); err != nil {
			return err
		}
	}
	m.written = append(m.written, updates...)
	return nil
}

type mockEmbedder struct {
	maxChars int
	texts    []string
	err      error
}

func (m *mockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	out, err := m.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (m *mockEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}

	m.texts = append(m.texts, texts...)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int    { return 2 }
func (m *mockEmbedder) MaxInputChars() int { return m.maxChars }
func (m *mockEmbedder) Model() string      { return "mock" }

func sources(n int) []essays.EmbeddingSource {
	out := make([]essays.EmbeddingSource, n)
	for i := range out {
		out[i] = essays.EmbeddingSource{ID: int64(i + 1), Title: "Title", Content: "Body"}
	}
	return out
}

func TestBackfillerBatches(t *testing.T) {
	store := &mockStore{sources: sources(5)}
	embedder := &mockEmbedder{maxChars: 100}

	stats, err := NewBackfiller(store, embedder, config.Flags{BatchSize: 2}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Embedded: 5, Written: 5, Batches: 3}, stats)
	assert.Equal(t, []int64{0, 2, 4}, store.queries)
	assert.Equal(t, "Title Body", embedder.texts[0])

	for i, u := range store.written {
		assert.Equal(t, int64(i+1), u.ID)
	}
}

func TestBackfillerTruncatesToEmbedderLimit(t *testing.T) {
	store := &mockStore{sources: []essays.EmbeddingSource{{ID: 1, Title: "T", Content: strings.Repeat("x", 50)}}}
	embedder := &mockEmbedder{maxChars: 10}

	_, err := NewBackfiller(store, embedder, config.Flags{BatchSize: 10}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, embedder.texts, 1)
	assert.Equal(t, "T "+strings.Repeat("x", 8), embedder.texts[0])
}

func TestBackfillerDryRun(t *testing.T) {
	store := &mockStore{sources: sources(3)}

	stats, err := NewBackfiller(store, &mockEmbedder{maxChars: 100}, config.Flags{BatchSize: 10, DryRun: true}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Embedded)
	assert.Zero(t, stats.Written)
	assert.Empty(t, store.written)
}

func TestBackfillerStopsOnEmbeddingError(t *testing.T) {
	store := &mockStore{sources: sources(3)}
	embedder := &mockEmbedder{maxChars: 100, err: errors.New("model unavailable")}

	_, err := NewBackfiller(store, embedder, config.Flags{BatchSize: 2}).Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.written)
}

func TestBackfillerKeepsCommittedBatches(t *testing.T) {
	calls := 0
	store := &mockStore{sources: sources(4), writeFn: func([]essays.EmbeddingUpdate) error {
		calls++
		if calls == 2 {
			return errors.New("connection reset")
		}
		return nil
	}}

	stats, err := NewBackfiller(store, &mockEmbedder{maxChars: 100}, config.Flags{BatchSize: 2}).Run(context.Background())
	require.Error(t, err)

	assert.Equal(t, 2, stats.Written)
	assert.Len(t, store.written, 2)
}
