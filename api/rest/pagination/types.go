package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params holds pagination parameters from request
type Params struct {
	Limit  int
	Offset int
}

// DefaultParams returns pagination params with defaults applied
// defaultLimit: default items per page, maxLimit: maximum allowed limit
func DefaultParams(limit, offset, defaultLimit, maxLimit int) Params {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Params{
		Limit:  limit,
		Offset: offset,
	}
}

// FromQuery reads ?limit= and ?offset=, rejecting values that are not integers
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) (Params, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return Params{}, err
	}

	offset, err := queryInt(c, "offset")
	if err != nil {
		return Params{}, err
	}

	return DefaultParams(limit, offset, defaultLimit, maxLimit), nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("validation: %s must be an integer", key)
	}

	return v, nil
}
