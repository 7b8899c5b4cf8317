package player

import (
	"context"
	"time"
)

// Repository is the roster catalog storage. Only UpdatePoints writes, and only
// the points ingestion flow calls it.
type Repository interface {
	// ListByMatch returns the roster ordered by role then id.
	ListByMatch(ctx context.Context, matchID string) ([]Player, error)
	GetByID(ctx context.Context, matchID, playerID string) (Player, bool, error)
	UpdatePoints(ctx context.Context, matchID string, points map[string]int64, at time.Time) error
}
