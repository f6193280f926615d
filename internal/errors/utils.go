package errors

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgconn"

	"codeberg.org/essayinsights/server/internal/insights"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/retriever"
)

// a classification rule; the first match wins
type rule struct {
	match    func(error) bool
	category string
	public   string
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func isPgError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}

var rules = []rule{
	{is(context.DeadlineExceeded), CategoryTimeout, "request timed out"},
	{is(context.Canceled), CategoryTimeout, "request canceled"},
	{is(retriever.ErrInvalidQuery), CategoryValidation, "validation failed"},
	{is(llm.ErrEmbedding), CategoryUpstream, "query could not be embedded"},
	{is(retriever.ErrStoreUnavailable), CategoryDatabase, "essay search is unavailable"},
	{is(insights.ErrSynthesis), CategoryUpstream, "insight generation failed"},
	{is(llm.ErrGeneration), CategoryUpstream, "insight generation failed"},
	{isPgError, CategoryDatabase, "database operation failed"},
}

// returns the category and the message safe to show the caller.
// outside production the raw error text is passed through for debugging.
func classifyError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{category: CategoryUnknown}
	}

	info := ErrorInfo{category: CategoryUnknown, sanitized: "an error occurred"}

	for _, r := range rules {
		if r.match(err) {
			info = ErrorInfo{category: r.category, sanitized: r.public}
			break
		}
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		info.sanitized = err.Error()
	}

	return info
}

func sanitizeError(err error) string {
	return classifyError(err).sanitized
}
