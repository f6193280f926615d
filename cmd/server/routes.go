package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apiessays "codeberg.org/essayinsights/server/api/rest/essays"
	"codeberg.org/essayinsights/server/api/rest/health"
	apisearch "codeberg.org/essayinsights/server/api/rest/search"
	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/logger"
	"codeberg.org/essayinsights/server/internal/metrics"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(metrics.Middleware())
	router.Use(CORSMiddleware(server.config))

	deps := health.Dependencies{}
	if server.db != nil {
		deps.Database = server.db
	}
	if server.services.cache != nil {
		deps.Cache = server.services.cache
	}

	router.GET("/health", health.Handler(deps))

	router.GET("/ping", health.PingHandler)
	router.GET("/metrics", metrics.Handler())

	apisearch.RegisterRoutes(router, server.services.Search, apisearch.Limits{
		DefaultLimit:  server.config.Search.DefaultLimit,
		MaxLimit:      server.config.Search.MaxLimit,
		MaxQueryChars: server.services.Embedder.MaxInputChars(),
	})

	apiessays.RegisterRoutes(router, server.services.Essays)
}

// allows the browser frontend to call the API
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	})
}
