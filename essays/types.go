package essays

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// an essay row as written by ingestion; read-only to the query path
type Essay struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// a ranked match returned by a vector store
type SearchResult struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// the listing projection served by GET /essays
type Summary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// text the backfill feeds to the embedder
type EmbeddingSource struct {
	ID      int64
	Title   string
	Content string
}

// Text is title and content joined by a single space.
func (s EmbeddingSource) Text() string {
	return s.Title + " " + s.Content
}

type EmbeddingUpdate struct {
	ID        int64
	Embedding []float32
}
