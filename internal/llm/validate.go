package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// rejects input the model cannot embed; truncation is the caller's decision
func validateInput(text string, maxChars int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is empty", ErrEmbedding)
	}

	if maxChars > 0 {
		if n := utf8.RuneCountInString(text); n > maxChars {
			return fmt.Errorf("%w: text has %d characters, limit is %d", ErrEmbedding, n, maxChars)
		}
	}

	return nil
}

func validateInputs(texts []string, maxChars int) error {
	if len(texts) == 0 {
		return fmt.Errorf("%w: no texts provided", ErrEmbedding)
	}

	for i, text := range texts {
		if err := validateInput(text, maxChars); err != nil {
			return fmt.Errorf("text %d: %w", i, err)
		}
	}

	return nil
}

// every stored and query vector must share the corpus dimension
func checkDimensions(vectors [][]float32, want int) error {
	for i, v := range vectors {
		if len(v) != want {
			return fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrEmbedding, i, len(v), want)
		}
	}

	return nil
}

// shortens s to at most maxChars runes, used by callers that own a truncation policy
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}

	runes := []rune(s)
	return string(runes[:maxChars])
}
