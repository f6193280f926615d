package main

import (
	"github.com/gin-gonic/gin"

	apiessays "codeberg.org/essayinsights/server/api/rest/essays"
	"codeberg.org/essayinsights/server/internal/cache"
	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/search"
	"codeberg.org/essayinsights/server/internal/storage"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *storage.Client // nil when STORE_DRIVER=memory
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds the search pipeline and the clients it is built from
type Services struct {
	Embedder  llm.Embedder
	Generator llm.TextGenerator
	Essays    apiessays.Lister
	Search    *search.Service

	cache   *cache.RedisStore // nil when embeddings are cached in memory
	closers []func() error
}
