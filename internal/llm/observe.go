package llm

import (
	"time"

	"codeberg.org/essayinsights/server/internal/metrics"
)

func observeEmbedding(provider Provider, model string, start time.Time, err error) {
	metrics.EmbeddingRequestsTotal.WithLabelValues(string(provider), model, metrics.Status(err)).Inc()

	if err == nil {
		metrics.EmbeddingRequestDuration.WithLabelValues(string(provider), model).Observe(time.Since(start).Seconds())
	}
}

func observeGeneration(provider Provider, model string, start time.Time, usage Usage, err error) {
	metrics.GenerationRequestsTotal.WithLabelValues(string(provider), model, metrics.Status(err)).Inc()

	if err != nil {
		return
	}

	metrics.GenerationRequestDuration.WithLabelValues(string(provider), model).Observe(time.Since(start).Seconds())
	metrics.GenerationTokensTotal.WithLabelValues(string(provider), model, "input").Add(float64(usage.InputTokens))
	metrics.GenerationTokensTotal.WithLabelValues(string(provider), model, "output").Add(float64(usage.OutputTokens))
}
