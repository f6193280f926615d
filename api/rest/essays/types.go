package essays

import (
	"context"

	essaycore "codeberg.org/essayinsights/server/essays"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// implemented by essays.Repository and the in-memory store
type Lister interface {
	List(ctx context.Context, limit, offset int) ([]essaycore.Summary, error)
}
