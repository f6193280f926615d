package essays

const (
	queryCount = "SELECT COUNT(*) FROM essays"

	queryList = `
		SELECT id, title, url
		FROM essays
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	// keyset pagination over id so a long backfill never rereads rows
	queryEmbeddingSources = `
		SELECT id, title, content
		FROM essays
		WHERE ($1 OR embedding IS NULL) AND id > $2
		ORDER BY id
		LIMIT $3
	`

	queryUpdateEmbedding = `
		UPDATE essays SET embedding = $1 WHERE id = $2
	`
)
