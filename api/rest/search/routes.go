package search

import (
	"context"

	"github.com/gin-gonic/gin"

	searchcore "codeberg.org/essayinsights/server/internal/search"
)

type Searcher interface {
	HandleSearch(ctx context.Context, text string, limit int) (*searchcore.Response, error)
}

func RegisterRoutes(router gin.IRouter, searcher Searcher, limits Limits) {
	router.POST("/search", SearchHandler(searcher, limits))
}
