package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/essayinsights/server/internal/config"
	"codeberg.org/essayinsights/server/internal/logger"
)

// @title Essay Insights API
// @version 1.0
// @description Semantic search over a fixed collection of essays with synthesized, attributed insights
// @description
// @description Features:
// @description - Natural-language essay search ranked by embedding similarity
// @description - 3-4 bullet insights across the matched essays
// @description - Paginated essay listing

// @license.name GPL-3.0
// @license.url https://www.gnu.org/licenses/gpl-3.0.html

// time allowed beyond the search deadline for writing the response
const writeTimeoutSlack = 5 * time.Second

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, nil))
	logger.Info("starting essay insights server", "environment", cfg.Environment)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	srv, err := NewServer(startupCtx, cfg)
	startupCancel()

	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Search.RequestTimeout + writeTimeoutSlack,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// in-flight searches get their full deadline to finish
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.RequestTimeout+writeTimeoutSlack)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
