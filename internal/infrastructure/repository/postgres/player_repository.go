package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"match_public_id",
	"name",
	"team_name",
	"team_short",
	"role",
	"credits",
	"points",
	"recent_form",
	"is_impact_player",
	"is_in_starting_xi",
	"points_updated_at",
	"created_at",
	"updated_at",
	"deleted_at",
}

const playerRoleOrder = "CASE role WHEN 'WK' THEN 0 WHEN 'BAT' THEN 1 WHEN 'AR' THEN 2 WHEN 'BOWL' THEN 3 ELSE 4 END"

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByMatch(ctx context.Context, matchID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy(playerRoleOrder, "role", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by match query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by match: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, matchID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

// UpdatePoints writes every value in one statement and rolls back unless each
// id matched a live roster row.
func (r *PlayerRepository) UpdatePoints(ctx context.Context, matchID string, points map[string]int64, at time.Time) error {
	if len(points) == 0 {
		return nil
	}

	ids := make([]string, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	values := make([]int64, 0, len(ids))
	for _, id := range ids {
		values = append(values, points[id])
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player points update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updatePointsQuery = `
UPDATE players AS p
SET points = v.points,
    points_updated_at = $3,
    updated_at = NOW()
FROM unnest($2::text[], $4::bigint[]) AS v(public_id, points)
WHERE p.match_public_id = $1
  AND p.public_id = v.public_id
  AND p.deleted_at IS NULL`

	res, err := tx.ExecContext(ctx, updatePointsQuery, matchID, pq.Array(ids), at.UTC(), pq.Array(values))
	if err != nil {
		return fmt.Errorf("update player points match=%s: %w", matchID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated player rows: %w", err)
	}
	if affected != int64(len(ids)) {
		return fmt.Errorf("update player points match=%s: matched %d of %d players", matchID, affected, len(ids))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player points update tx: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:              row.PublicID,
		MatchID:         row.MatchID,
		Name:            row.Name,
		TeamName:        row.TeamName,
		TeamShort:       row.TeamShort,
		Role:            player.Role(row.Role),
		Credits:         player.Credits(row.Credits),
		Points:          row.Points,
		RecentForm:      append([]int64(nil), row.RecentForm...),
		IsImpactPlayer:  row.IsImpactPlayer,
		IsInStartingXI:  row.IsInStartingXI,
		PointsUpdatedAt: nullTimeToPtr(row.PointsUpdatedAt),
	}
}

func playerInsertFromDomain(p player.Player) playerInsertModel {
	return playerInsertModel{
		PublicID:       p.ID,
		MatchID:        p.MatchID,
		Name:           p.Name,
		TeamName:       p.TeamName,
		TeamShort:      p.TeamShort,
		Role:           string(p.Role),
		Credits:        int64(p.Credits),
		RecentForm:     pq.Int64Array(append([]int64{}, p.RecentForm...)),
		IsImpactPlayer: p.IsImpactPlayer,
		IsInStartingXI: p.IsInStartingXI,
	}
}
