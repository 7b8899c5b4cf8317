package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	// ListStartingBetween returns matches with from < StartTime <= to, ordered by start time.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
}
