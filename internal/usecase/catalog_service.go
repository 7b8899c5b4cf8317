package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"go.opentelemetry.io/otel/attribute"
)

// MatchView carries the time-derived flags so clients never re-derive them.
type MatchView struct {
	Match     match.Match
	Visible   bool
	CanEdit   bool
	Remaining match.Remaining
}

// CatalogService is the read-only roster catalog.
type CatalogService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	policy     match.Policy
	now        func() time.Time
}

func NewCatalogService(matchRepo match.Repository, playerRepo player.Repository, policy match.Policy) *CatalogService {
	return &CatalogService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		policy:     policy,
		now:        time.Now,
	}
}

func (s *CatalogService) ListVisibleMatches(ctx context.Context) ([]MatchView, error) {
	ctx, span := startSpan(ctx, "CatalogService.ListVisibleMatches")
	defer span.End()

	now := s.now().UTC()
	items, err := s.matchRepo.ListStartingBetween(ctx, now, now.Add(match.VisibilityHorizon))
	if err != nil {
		return nil, fmt.Errorf("list matches in visibility window: %w", err)
	}

	out := make([]MatchView, 0, len(items))
	for _, m := range items {
		view := s.view(m, now)
		if !view.Visible {
			continue
		}
		out = append(out, view)
	}

	return out, nil
}

func (s *CatalogService) GetMatch(ctx context.Context, matchID string) (MatchView, error) {
	ctx, span := startSpan(ctx, "CatalogService.GetMatch", attribute.String("match_id", matchID))
	defer span.End()

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	return s.view(m, s.now().UTC()), nil
}

func (s *CatalogService) PlayersForMatch(ctx context.Context, matchID string) ([]player.Player, error) {
	ctx, span := startSpan(ctx, "CatalogService.PlayersForMatch", attribute.String("match_id", matchID))
	defer span.End()

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list players by match: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Player(ctx context.Context, matchID, playerID string) (player.Player, error) {
	ctx, span := startSpan(ctx, "CatalogService.Player", attribute.String("match_id", matchID), attribute.String("player_id", playerID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	playerID = strings.TrimSpace(playerID)
	if matchID == "" || playerID == "" {
		return player.Player{}, fmt.Errorf("%w: match_id and player_id are required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, matchID, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s match=%s", ErrNotFound, playerID, matchID)
	}
	return p, nil
}

func (s *CatalogService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *CatalogService) view(m match.Match, now time.Time) MatchView {
	return MatchView{
		Match:     m,
		Visible:   match.VisibilityWindow(m, now),
		CanEdit:   s.policy.CanEdit(m, now),
		Remaining: match.TimeRemaining(m, now),
	}
}
