package team

import (
	"context"
	"errors"
	"time"
)

// ErrVersionConflict means the stored team changed since it was read.
var ErrVersionConflict = errors.New("team version conflict")

// Repository stores user teams. Implementations serialize writes per team id.
type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	// ListByUser filters by match when matchID is non-empty.
	ListByUser(ctx context.Context, userID, matchID string) ([]Team, error)
	ListByMatch(ctx context.Context, matchID string) ([]Team, error)
	// ReplaceSelection writes t's roster fields only when the stored version equals
	// expectedVersion, then bumps the version.
	ReplaceSelection(ctx context.Context, t Team, expectedVersion int64) error
	// UpdateTotalPoints is a no-op when the stored total was computed after
	// computedAt, so an older recompute finishing late cannot win.
	UpdateTotalPoints(ctx context.Context, teamID string, points int64, computedAt time.Time) error
	Delete(ctx context.Context, teamID string) error
}
