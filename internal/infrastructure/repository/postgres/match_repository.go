package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id",
	"public_id",
	"home_name",
	"home_short",
	"home_color",
	"away_name",
	"away_short",
	"away_color",
	"venue",
	"start_time",
	"status",
	"status_note",
	"prize_pool",
	"entry_fee",
	"spots_total",
	"spots_filled",
	"format",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.Gt("start_time", from.UTC()),
			qb.Lte("start_time", to.UTC()),
			qb.IsNull("deleted_at"),
		).
		OrderBy("start_time", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by start window query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by start window: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.PublicID,
		Home:        match.Side{Name: row.HomeName, Short: row.HomeShort, Color: row.HomeColor},
		Away:        match.Side{Name: row.AwayName, Short: row.AwayShort, Color: row.AwayColor},
		Venue:       row.Venue,
		StartTime:   row.StartTime.UTC(),
		Status:      match.Status(row.Status),
		StatusNote:  row.StatusNote,
		PrizePool:   row.PrizePool,
		EntryFee:    row.EntryFee,
		SpotsTotal:  row.SpotsTotal,
		SpotsFilled: row.SpotsFilled,
		Format:      row.Format,
	}
}

func matchInsertFromDomain(m match.Match) matchInsertModel {
	return matchInsertModel{
		PublicID:    m.ID,
		HomeName:    m.Home.Name,
		HomeShort:   m.Home.Short,
		HomeColor:   m.Home.Color,
		AwayName:    m.Away.Name,
		AwayShort:   m.Away.Short,
		AwayColor:   m.Away.Color,
		Venue:       m.Venue,
		StartTime:   m.StartTime.UTC(),
		Status:      string(m.Status),
		StatusNote:  m.StatusNote,
		PrizePool:   m.PrizePool,
		EntryFee:    m.EntryFee,
		SpotsTotal:  m.SpotsTotal,
		SpotsFilled: m.SpotsFilled,
		Format:      m.Format,
	}
}
