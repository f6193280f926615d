package main

import (
	"context"
	"fmt"
	"io"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/cache"
	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/insights"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/logger"
	"codeberg.org/essayinsights/server/internal/retriever"
	"codeberg.org/essayinsights/server/internal/search"
	"codeberg.org/essayinsights/server/internal/storage"
)

// query vectors kept in process when no redis is configured
const memoryCacheEntries = 10000

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config, db *storage.Client) (*Services, error) {
	services := &Services{}

	baseEmbedder, err := llm.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	if closer, ok := baseEmbedder.(io.Closer); ok {
		services.closers = append(services.closers, closer.Close)
	}

	services.Embedder = llm.NewCachedEmbedder(baseEmbedder, newEmbeddingCache(cfg, services))

	services.Generator, err = llm.NewGenerator(cfg)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	var store retriever.VectorStore

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		memStore, err := loadMemoryStore(ctx, cfg.CorpusFile, services.Embedder)
		if err != nil {
			services.Close()
			return nil, err
		}

		store = memStore
		services.Essays = memStore
	default:
		store = retriever.NewPostgresStore(db.Pool())
		services.Essays = essays.NewRepository(db.Pool())
	}

	engine := retriever.NewEngine(services.Embedder, store)
	synthesizer := insights.NewSynthesizer(services.Generator, cfg.Search.ContextChars)

	services.Search = search.NewService(engine, synthesizer, search.Config{
		Threshold:      cfg.Search.MatchThreshold,
		RequestTimeout: cfg.Search.RequestTimeout,
		FailureMode:    search.FailureMode(cfg.Search.FailureMode),
	})

	logger.Info("search pipeline ready",
		"store", cfg.StoreDriver,
		"embedder", services.Embedder.Model(),
		"dimensions", services.Embedder.Dimensions(),
		"generator", services.Generator.Model(),
		"threshold", cfg.Search.MatchThreshold,
		"failure_mode", cfg.Search.FailureMode,
	)

	return services, nil
}

// redis when configured and reachable, otherwise a bounded in-process map
func newEmbeddingCache(cfg *config.Config, services *Services) llm.EmbeddingStore {
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisURL, 0)
		if err == nil {
			services.cache = redisStore
			services.closers = append(services.closers, redisStore.Close)
			return redisStore
		}

		// a bad redis url degrades to the memory cache
		logger.ErrorErr(err, "embedding cache falling back to memory")
	}

	return cache.NewMemoryStore(memoryCacheEntries)
}

func loadMemoryStore(ctx context.Context, path string, embedder llm.Embedder) (*retriever.MemoryStore, error) {
	corpus, err := retriever.LoadCorpus(path)
	if err != nil {
		return nil, err
	}

	if err := retriever.EmbedMissing(ctx, embedder, corpus); err != nil {
		return nil, fmt.Errorf("failed to embed corpus: %w", err)
	}

	logger.Info("loaded in-memory corpus", "path", path, "essays", len(corpus))

	return retriever.NewMemoryStore(corpus), nil
}

// releases model sessions and cache connections
func (s *Services) Close() {
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			logger.Warn("failed to release service", "error", err)
		}
	}
}
