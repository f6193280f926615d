package insights

import (
	"errors"

	"codeberg.org/essayinsights/server/internal/llm"
)

// the generator was unreachable or returned an error
var ErrSynthesis = errors.New("insight synthesis failed")

const (
	Marker = "•"

	minInsights = 3
	maxInsights = 4

	defaultContextChars = 1000
)

// returned when no essay matched and the generator produced nothing usable
const DefaultInsights = "• No essays in the collection closely matched this query.\n" +
	"• Try rephrasing the question with more specific terms.\n" +
	"• Broad topics such as startups, writing and programming match the most essays."

// turns ranked essays into a short attributed digest
type Synthesizer struct {
	generator    llm.TextGenerator
	contextChars int
}

// a formatted digest; Text is the rendered bullet list served to clients
type Digest struct {
	Text     string    `json:"text"`
	Insights []Insight `json:"insights"`
	Outcome  Outcome   `json:"-"`
}

type Insight struct {
	Text  string `json:"text"`  // without the marker
	Essay string `json:"essay"` // attributed essay title, empty if none was named
}

// how a digest was obtained
type Outcome string

const (
	OutcomeValid       Outcome = "valid"
	OutcomeRetried     Outcome = "retried"
	OutcomeReformatted Outcome = "reformatted"
	OutcomeDefault     Outcome = "default"
)
