package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	ID              int64         `db:"id"`
	PublicID        string        `db:"public_id"`
	MatchID         string        `db:"match_public_id"`
	Name            string        `db:"name"`
	TeamName        string        `db:"team_name"`
	TeamShort       string        `db:"team_short"`
	Role            string        `db:"role"`
	Credits         int64         `db:"credits"`
	Points          int64         `db:"points"`
	RecentForm      pq.Int64Array `db:"recent_form"`
	IsImpactPlayer  bool          `db:"is_impact_player"`
	IsInStartingXI  bool          `db:"is_in_starting_xi"`
	PointsUpdatedAt sql.NullTime  `db:"points_updated_at"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
	DeletedAt       *time.Time    `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID       string        `db:"public_id"`
	MatchID        string        `db:"match_public_id"`
	Name           string        `db:"name"`
	TeamName       string        `db:"team_name"`
	TeamShort      string        `db:"team_short"`
	Role           string        `db:"role"`
	Credits        int64         `db:"credits"`
	RecentForm     pq.Int64Array `db:"recent_form"`
	IsImpactPlayer bool          `db:"is_impact_player"`
	IsInStartingXI bool          `db:"is_in_starting_xi"`
}
