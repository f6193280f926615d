package insights

import (
	"fmt"
	"strings"

	"codeberg.org/essayinsights/server/essays"
	"codeberg.org/essayinsights/server/internal/llm"
)

const systemRole = "You are an expert at analyzing Paul Graham's essays and extracting actionable insights."

// renders each result as "Essay: {title}\n{excerpt}..." in rank order
func buildContext(results []essays.SearchResult, maxChars int) string {
	if maxChars <= 0 {
		maxChars = defaultContextChars
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Essay: %s\n%s...", r.Title, llm.Truncate(r.Content, maxChars)))
	}

	return strings.Join(parts, "\n\n")
}

func buildPrompt(query, context string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Analyze these relevant essays from Paul Graham in relation to the query: %q\n", query))
	builder.WriteString("Extract and synthesize the key insights, patterns, and advice across all these essays.\n\n")

	if context == "" {
		builder.WriteString("(No essays matched this query closely.)\n\n")
	} else {
		builder.WriteString(context)
		builder.WriteString("\n\n")
	}

	builder.WriteString("Provide only 3-4 key insights that emerge across these essays, focusing on practical takeaways.\n")
	builder.WriteString(fmt.Sprintf("Format each insight as a bullet point starting with %q. End each insight with a period. ", Marker))
	builder.WriteString("Keep each insight short and concise and point out the essay as well for each insight.")

	return builder.String()
}

// sent with the rejected answer so the second attempt knows what to fix
func buildCorrection(problem error) string {
	return fmt.Sprintf(
		"Your previous answer did not follow the required format (%v). "+
			"Rewrite it as 3 to 4 bullet points, one per line, each starting with %q and ending with a period. "+
			"Name the essay each insight comes from. Return only the bullet points.",
		problem, Marker,
	)
}
