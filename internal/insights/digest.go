package insights

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"codeberg.org/essayinsights/server/essays"
)

var (
	errTooFewInsights  = errors.New("too few insights")
	errTooManyInsights = errors.New("too many insights")
	errMissingPeriod   = errors.New("insight does not end with a period")
	errEmptyInsight    = errors.New("insight is empty")
)

// extracts marker-prefixed lines. text before the first marker is dropped and
// unmarked lines after a marker are treated as its continuation.
func ParseDigest(text string, results []essays.SearchResult) *Digest {
	var insights []Insight

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, Marker); ok {
			insights = append(insights, Insight{Text: strings.TrimSpace(rest)})
			continue
		}

		if len(insights) > 0 {
			last := &insights[len(insights)-1]
			last.Text = strings.TrimSpace(last.Text + " " + line)
		}
	}

	for i := range insights {
		insights[i].Essay = attribute(insights[i].Text, results)
	}

	return newDigest(insights)
}

// reports the first shape violation, nil for a well-formed digest
func Validate(d *Digest) error {
	if d == nil || len(d.Insights) < minInsights {
		return errTooFewInsights
	}

	if len(d.Insights) > maxInsights {
		return errTooManyInsights
	}

	for i, in := range d.Insights {
		if in.Text == "" {
			return fmt.Errorf("insight %d: %w", i+1, errEmptyInsight)
		}

		if !strings.HasSuffix(in.Text, ".") {
			return fmt.Errorf("insight %d: %w", i+1, errMissingPeriod)
		}
	}

	return nil
}

// coerces arbitrary generator output into a valid digest: split into
// sentences, keep at most four, end each with a period, and pad to three with
// pointers to the matched essays
func Reformat(text string, results []essays.SearchResult) *Digest {
	sentences := splitSentences(text)
	if len(sentences) > maxInsights {
		sentences = sentences[:maxInsights]
	}

	insights := make([]Insight, 0, maxInsights)
	for _, s := range sentences {
		s = terminate(s)
		insights = append(insights, Insight{Text: s, Essay: attribute(s, results)})
	}

	for i, title := range paddingTitles(insights, results) {
		if len(insights) >= minInsights {
			break
		}

		insights = append(insights, Insight{
			Text:  fmt.Sprintf(pointerTemplates[i%len(pointerTemplates)], "“"+title+"”"),
			Essay: title,
		})
	}

	for i := 0; len(insights) < minInsights; i++ {
		insights = append(insights, Insight{Text: genericPadding[i%len(genericPadding)]})
	}

	return newDigest(insights)
}

// phrasings for padding bullets; each pad uses the next one so no two repeat
var pointerTemplates = []string{
	"Read %s for more on this question.",
	"%s returns to this question from another angle.",
	"See %s for the argument in full.",
	"%s is the closest match among the essays.",
}

// only reached when no result has a title
var genericPadding = []string{
	"No matched essay addresses this question directly.",
	"The closest essays touch on it only in passing.",
	"Rephrasing the question may find a closer essay.",
}

// titled results not yet cited come first, then the rest in rank order,
// repeated so a single result can fill every pad
func paddingTitles(insights []Insight, results []essays.SearchResult) []string {
	cited := make(map[string]bool)
	for _, in := range insights {
		cited[in.Essay] = true
	}

	var fresh, seen []string
	for _, r := range results {
		switch {
		case r.Title == "" || slices.Contains(fresh, r.Title) || slices.Contains(seen, r.Title):
		case cited[r.Title]:
			seen = append(seen, r.Title)
		default:
			fresh = append(fresh, r.Title)
		}
	}

	order := append(fresh, seen...)
	if len(order) == 0 {
		return nil
	}

	titles := make([]string, minInsights)
	for i := range titles {
		titles[i] = order[i%len(order)]
	}

	return titles
}

func newDigest(insights []Insight) *Digest {
	lines := make([]string, len(insights))
	for i, in := range insights {
		lines[i] = Marker + " " + in.Text
	}

	return &Digest{Text: strings.Join(lines, "\n"), Insights: insights}
}

// first result title mentioned in the insight, case-insensitive
func attribute(text string, results []essays.SearchResult) string {
	lower := strings.ToLower(text)

	for _, r := range results {
		if r.Title != "" && strings.Contains(lower, strings.ToLower(r.Title)) {
			return r.Title
		}
	}

	return ""
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()

		s = strings.TrimLeftFunc(s, func(r rune) bool {
			return r == '•' || r == '-' || r == '*' || unicode.IsDigit(r) || unicode.IsSpace(r) || r == ')'
		})
		// a leftover "." from a numbered list marker
		s = strings.TrimSpace(strings.TrimPrefix(s, "."))

		if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
			sentences = append(sentences, s)
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}

		current.WriteRune(r)

		if (r == '.' || r == '!' || r == '?') && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			flush()
		}
	}
	flush()

	return sentences
}

// replaces trailing punctuation with a single period
func terminate(s string) string {
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(".!?;:,", r)
	})

	return s + "."
}
