package search

import (
	"codeberg.org/essayinsights/server/essays"
)

// request payload for an essay search
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit *int   `json:"limit,omitempty"` // defaults to 5
}

// response payload for an essay search
type SearchResponse struct {
	Essays   []essays.SearchResult `json:"essays"`
	Insights string                `json:"insights"`
	Degraded bool                  `json:"degraded,omitempty"` // insights could not be generated
}

type Limits struct {
	DefaultLimit  int
	MaxLimit      int
	MaxQueryChars int // zero disables the length check
}
