package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/essayinsights/server/internal/logger"
)

const (
	serviceName = "essayinsights"
	version     = "1.0.0"
	pingTimeout = 2 * time.Second
)

// Handler godoc
// @Summary Health check
// @Description Liveness plus database and cache reachability. A down database is 503;
// @Description a down cache only degrades the status since queries still succeed.
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func Handler(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:   "healthy",
			Service:  serviceName,
			Version:  version,
			Database: "disabled",
			Cache:    "memory",
		}
		status := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		log := logger.FromContext(c.Request.Context())

		if deps.Database != nil {
			resp.Database = "ok"

			if err := deps.Database.Ping(ctx); err != nil {
				log.Warn("database ping failed", "error", err)

				resp.Status = "degraded"
				resp.Database = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		if deps.Cache != nil {
			resp.Cache = "ok"

			if err := deps.Cache.Ping(ctx); err != nil {
				log.Warn("cache ping failed", "error", err)

				resp.Status = "degraded"
				resp.Cache = "unavailable"
			}
		}

		c.JSON(status, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
