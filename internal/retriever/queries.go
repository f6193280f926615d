package retriever

const (
	// match_essays already filters and caps; the outer ORDER BY pins the id tie-break
	matchEssaysQuery = `
		SELECT
			id,
			title,
			url,
			content,
			similarity
		FROM match_essays($1, $2, $3)
		ORDER BY similarity DESC, id ASC
	`
)
