package search

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/essayinsights/server/internal/insights"
	"codeberg.org/essayinsights/server/internal/retriever"
)

func NewService(r Retriever, s Synthesizer, config Config) *Service {
	if config.FailureMode == "" {
		config.FailureMode = FailureModeFail
	}

	return &Service{retriever: r, synthesizer: s, config: config}
}

// runs retrieval to completion, then synthesis over exactly those results.
// once the deadline passes the context error is returned and synthesis is never started.
func (s *Service) HandleSearch(ctx context.Context, text string, limit int) (*Response, error) {
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	results, err := s.retriever.Retrieve(ctx, retriever.Query{
		Text:      text,
		Limit:     limit,
		Threshold: s.config.Threshold,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("retrieval interrupted: %w", ctxErr)
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("retrieval interrupted: %w", err)
	}

	digest, err := s.synthesizer.Synthesize(ctx, text, results)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("synthesis interrupted: %w", ctxErr)
		}

		if s.config.FailureMode == FailureModeDegrade && errors.Is(err, insights.ErrSynthesis) {
			return &Response{Results: results, Degraded: true}, nil
		}

		return nil, err
	}

	return &Response{Results: results, Insights: digest}, nil
}
