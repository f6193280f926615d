package essays

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/essayinsights/server/api/rest/pagination"
	"codeberg.org/essayinsights/server/internal/errors"
)

// ListEssaysHandler godoc
// @Summary List essays
// @Description List essays ordered by id
// @Tags essays
// @Produce json
// @Param limit query int false "Max results (default 10, max 100)"
// @Param offset query int false "Number of essays to skip"
// @Success 200 {array} essays.Summary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /essays [get]
func ListEssaysHandler(lister Lister) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := pagination.FromQuery(c, defaultListLimit, maxListLimit)
		if err != nil {
			errors.ValidationError(c, err)
			return
		}

		summaries, err := lister.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list essays", err)
			return
		}

		c.JSON(http.StatusOK, summaries)
	}
}
