package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"codeberg.org/essayinsights/server/internal/cache"
	"codeberg.org/essayinsights/server/internal/logger"
	"codeberg.org/essayinsights/server/internal/metrics"
)

// key-value store consulted before the wrapped embedder
type EmbeddingStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// caches vectors by model and exact text. store faults are logged and
// treated as misses so a cache outage never fails a request.
type CachedEmbedder struct {
	inner Embedder
	store EmbeddingStore
}

func NewCachedEmbedder(inner Embedder, store EmbeddingStore) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, store: store}
}

func (c *CachedEmbedder) Model() string      { return c.inner.Model() }
func (c *CachedEmbedder) Dimensions() int    { return c.inner.Dimensions() }
func (c *CachedEmbedder) MaxInputChars() int { return c.inner.MaxInputChars() }

func (c *CachedEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	key := c.cacheKey(text)

	if vec, ok := c.get(ctx, key); ok {
		metrics.EmbeddingCacheTotal.WithLabelValues("hit").Inc()
		return vec, nil
	}

	metrics.EmbeddingCacheTotal.WithLabelValues("miss").Inc()

	vec, err := c.inner.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, err
	}

	c.put(ctx, key, vec)
	return vec, nil
}

// batches go straight to the inner embedder; they come from backfill where
// every text is new
func (c *CachedEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.GenerateEmbeddings(ctx, texts)
}

func (c *CachedEmbedder) cacheKey(text string) string {
	h := sha256.Sum256([]byte(c.inner.Model() + "\x00" + text))
	return "emb:" + hex.EncodeToString(h[:])
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.FromContext(ctx).Warn("failed to read cached embedding", "key", key, "error", err)
		}
		return nil, false
	}

	vec, err := bytesToVector(data)
	if err != nil || len(vec) != c.inner.Dimensions() {
		logger.FromContext(ctx).Warn("discarding malformed cached embedding", "key", key, "bytes", len(data))
		return nil, false
	}

	return vec, true
}

func (c *CachedEmbedder) put(ctx context.Context, key string, vec []float32) {
	if err := c.store.Set(ctx, key, vectorToBytes(vec)); err != nil {
		logger.FromContext(ctx).Warn("failed to cache embedding", "key", key, "error", err)
	}
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid cached embedding length %d", len(data))
	}

	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
