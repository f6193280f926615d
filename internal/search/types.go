package search

import (
	"context"
	"time"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/insights"
	"codeberg.org/essayinsights/server/internal/retriever"
)

type Retriever interface {
	Retrieve(ctx context.Context, q retriever.Query) ([]essays.SearchResult, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, query string, results []essays.SearchResult) (*insights.Digest, error)
}

// what to do when results were found but the digest could not be produced
type FailureMode string

const (
	FailureModeFail    FailureMode = "fail"
	FailureModeDegrade FailureMode = "degrade"
)

type Config struct {
	Threshold      float64
	RequestTimeout time.Duration // zero leaves the caller's deadline alone
	FailureMode    FailureMode
}

// answers a query with ranked essays and a digest of insights across them
type Service struct {
	retriever   Retriever
	synthesizer Synthesizer
	config      Config
}

type Response struct {
	Results  []essays.SearchResult
	Insights *insights.Digest // nil only when Degraded
	Degraded bool
}
