package retriever

import (
	"cmp"
	"math"
	"slices"

	"codeberg.org/essayinsights/server/essays"
)

// keeps results at or above threshold, orders them by similarity descending
// with ascending id as the tie-break, and caps the count at limit
func Rank(results []essays.SearchResult, threshold float64, limit int) []essays.SearchResult {
	ranked := make([]essays.SearchResult, 0, len(results))

	for _, r := range results {
		if r.Similarity >= threshold {
			ranked = append(ranked, r)
		}
	}

	slices.SortFunc(ranked, func(a, b essays.SearchResult) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// cosine similarity in [-1, 1]; a zero vector is similar to nothing
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64

	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
