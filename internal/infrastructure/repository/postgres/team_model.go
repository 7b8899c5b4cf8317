package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	UserID           string         `db:"user_id"`
	MatchID          string         `db:"match_public_id"`
	Name             string         `db:"name"`
	PlayerIDs        pq.StringArray `db:"player_ids"`
	CaptainID        string         `db:"captain_id"`
	ViceCaptainID    string         `db:"vice_captain_id"`
	TotalPoints      int64          `db:"total_points"`
	PointsComputedAt sql.NullTime   `db:"points_computed_at"`
	Version          int64          `db:"version"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID      string         `db:"public_id"`
	UserID        string         `db:"user_id"`
	MatchID       string         `db:"match_public_id"`
	Name          string         `db:"name"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
	CaptainID     string         `db:"captain_id"`
	ViceCaptainID string         `db:"vice_captain_id"`
	Version       int64          `db:"version"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
