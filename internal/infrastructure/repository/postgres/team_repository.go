package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"match_public_id",
	"name",
	"player_ids",
	"captain_id",
	"vice_captain_id",
	"total_points",
	"points_computed_at",
	"version",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	version := item.Version
	if version <= 0 {
		version = 1
	}
	model := teamInsertModel{
		PublicID:      item.ID,
		UserID:        item.UserID,
		MatchID:       item.MatchID,
		Name:          item.Name,
		PlayerIDs:     pq.StringArray(append([]string{}, item.PlayerIDs...)),
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		Version:       version,
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}

	query, args, err := qb.InsertModel("user_teams", model, "")
	if err != nil {
		return fmt.Errorf("build insert user team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert user team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("user_teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select user team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get user team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID, matchID string) ([]team.Team, error) {
	conditions := []qb.Condition{
		qb.Eq("user_id", userID),
		qb.IsNull("deleted_at"),
	}
	if matchID != "" {
		conditions = append(conditions, qb.Eq("match_public_id", matchID))
	}
	return r.selectTeams(ctx, "user", conditions...)
}

func (r *TeamRepository) ListByMatch(ctx context.Context, matchID string) ([]team.Team, error) {
	return r.selectTeams(ctx, "match", qb.Eq("match_public_id", matchID), qb.IsNull("deleted_at"))
}

func (r *TeamRepository) ReplaceSelection(ctx context.Context, item team.Team, expectedVersion int64) error {
	query, args, err := qb.Update("user_teams").
		Set("player_ids", pq.StringArray(append([]string{}, item.PlayerIDs...))).
		Set("captain_id", item.CaptainID).
		Set("vice_captain_id", item.ViceCaptainID).
		Set("updated_at", item.UpdatedAt.UTC()).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("public_id", item.ID),
			qb.Eq("version", expectedVersion),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build replace user team selection query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("replace user team selection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read replaced user team rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: team=%s expected_version=%d", team.ErrVersionConflict, item.ID, expectedVersion)
	}
	return nil
}

func (r *TeamRepository) UpdateTotalPoints(ctx context.Context, teamID string, points int64, computedAt time.Time) error {
	query, args, err := qb.Update("user_teams").
		Set("total_points", points).
		Set("points_computed_at", computedAt.UTC()).
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
			qb.Expr("(points_computed_at IS NULL OR points_computed_at <= ?)", computedAt.UTC()),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user team points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user team points: %w", err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("user_teams").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete user team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("soft delete user team: %w", err)
	}
	return nil
}

func (r *TeamRepository) selectTeams(ctx context.Context, scope string, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("user_teams").
		Where(conditions...).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select user teams by %s query: %w", scope, err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select user teams by %s: %w", scope, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:               row.PublicID,
		UserID:           row.UserID,
		MatchID:          row.MatchID,
		Name:             row.Name,
		PlayerIDs:        append([]string(nil), row.PlayerIDs...),
		CaptainID:        row.CaptainID,
		ViceCaptainID:    row.ViceCaptainID,
		TotalPoints:      row.TotalPoints,
		PointsComputedAt: nullTimeToPtr(row.PointsComputedAt),
		Version:          row.Version,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}
