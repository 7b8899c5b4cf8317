package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-fantasy/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/cricket-fantasy/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo matches and rosters into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count matches for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	matches := memory.SeedMatches(now)
	for _, m := range matches {
		query, args, err := qb.InsertModel("matches", matchInsertFromDomain(m), "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed match %s query: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers(matches) {
		query, args, err := qb.InsertModel("players", playerInsertFromDomain(p), "ON CONFLICT (match_public_id, public_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
