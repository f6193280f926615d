package retriever

import (
	"time"

	"codeberg.org/essayinsights/server/internal/metrics"
)

func observeSearch(driver string, start time.Time, n int, err error) {
	metrics.StoreSearchDuration.WithLabelValues(driver, metrics.Status(err)).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.StoreSearchResults.WithLabelValues(driver).Observe(float64(n))
	}
}
