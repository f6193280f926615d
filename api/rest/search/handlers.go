package search

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"codeberg.org/essayinsights/server/internal/errors"
	"codeberg.org/essayinsights/server/internal/logger"
)

// SearchHandler godoc
// @Summary Search essays
// @Description Find essays semantically similar to the query and summarize insights across them
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search request"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /search [post]
func SearchHandler(searcher Searcher, limits Limits) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			errors.ValidationError(c, fmt.Errorf("validation: query must not be blank"))
			return
		}

		if limits.MaxQueryChars > 0 && utf8.RuneCountInString(query) > limits.MaxQueryChars {
			errors.ValidationError(c, fmt.Errorf("validation: query exceeds %d characters", limits.MaxQueryChars))
			return
		}

		limit := limits.DefaultLimit
		if req.Limit != nil {
			if *req.Limit <= 0 {
				errors.ValidationError(c, fmt.Errorf("validation: limit must be positive"))
				return
			}

			limit = min(*req.Limit, limits.MaxLimit)
		}

		resp, err := searcher.HandleSearch(c.Request.Context(), query, limit)
		if err != nil {
			errors.FromError(c, err)
			return
		}

		out := SearchResponse{
			Essays:   resp.Results,
			Degraded: resp.Degraded,
		}

		if resp.Insights != nil {
			out.Insights = resp.Insights.Text
		}

		if resp.Degraded {
			logger.FromContext(c.Request.Context()).Warn("returning results without insights", "results", len(resp.Results))
		}

		c.JSON(http.StatusOK, out)
	}
}
