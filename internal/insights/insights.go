package insights

import (
	"context"
	"fmt"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/metrics"
)

// contextChars caps the excerpt taken from each essay; zero uses 1000
func NewSynthesizer(generator llm.TextGenerator, contextChars int) *Synthesizer {
	if contextChars <= 0 {
		contextChars = defaultContextChars
	}

	return &Synthesizer{generator: generator, contextChars: contextChars}
}

// asks the generator for 3-4 attributed insights across results. a malformed
// answer gets exactly one corrective follow-up; if that is still malformed
// the text is reformatted locally. generator errors are ErrSynthesis.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []essays.SearchResult) (digest *Digest, err error) {
	defer func() {
		outcome := "error"
		if err == nil {
			outcome = string(digest.Outcome)
		}
		metrics.SynthesisOutcomesTotal.WithLabelValues(outcome).Inc()
	}()

	messages := []llm.Message{
		{Role: "user", Content: buildPrompt(query, buildContext(results, s.contextChars))},
	}

	first, err := s.generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	digest = ParseDigest(first, results)
	problem := Validate(digest)
	if problem == nil {
		digest.Outcome = OutcomeValid
		return digest, nil
	}

	messages = append(messages,
		llm.Message{Role: "assistant", Content: first},
		llm.Message{Role: "user", Content: buildCorrection(problem)},
	)

	// a failed follow-up still leaves the first answer to work with,
	// unless the request itself is gone
	latest := first
	second, retryErr := s.generate(ctx, messages)
	if retryErr != nil {
		if ctx.Err() != nil {
			return nil, retryErr
		}
	} else {
		latest = second

		digest = ParseDigest(second, results)
		if Validate(digest) == nil {
			digest.Outcome = OutcomeRetried
			return digest, nil
		}
	}

	if len(results) == 0 {
		digest = ParseDigest(DefaultInsights, nil)
		digest.Outcome = OutcomeDefault
		return digest, nil
	}

	digest = Reformat(latest, results)
	digest.Outcome = OutcomeReformatted
	return digest, nil
}

func (s *Synthesizer) generate(ctx context.Context, messages []llm.Message) (string, error) {
	resp, err := s.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: systemRole,
		Messages:     messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	return resp.Text, nil
}
