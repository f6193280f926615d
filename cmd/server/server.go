package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/storage"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	var db *storage.Client

	if cfg.StoreDriver == config.StoreDriverPostgres {
		var err error

		db, err = storage.NewClient(ctx, cfg.SupabaseConnString)
		if err != nil {
			return nil, err
		}
	}

	services, err := InitializeServices(ctx, cfg, db)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	server := &Server{
		db:       db,
		config:   cfg,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// releases services first, then the database pool
func (s *Server) Close() {
	s.services.Close()

	if s.db != nil {
		s.db.Close()
	}
}
