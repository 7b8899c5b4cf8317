package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	matchmock "github.com/riskibarqy/cricket-fantasy/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/cricket-fantasy/internal/mocks/domain/player"
)

func TestCatalogService_ListVisibleMatchesUsingMockery(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	players := playermock.NewRepository(t)
	svc := NewCatalogService(matches, players, match.NewPolicy(0))
	svc.now = func() time.Time { return fixedNow }

	soon := upcomingMatch("soon", 47*time.Hour+59*time.Minute)
	tooFar := upcomingMatch("far", 49*time.Hour)
	delayed := upcomingMatch("delayed", 2*time.Hour)
	delayed.Status = match.StatusDelayed

	matches.
		On("ListStartingBetween", anyCtx(), fixedNow, fixedNow.Add(match.VisibilityHorizon)).
		Return([]match.Match{delayed, soon, tooFar}, nil).
		Once()

	got, err := svc.ListVisibleMatches(context.Background())
	if err != nil {
		t.Fatalf("list visible matches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the 49h match to be filtered out, got %d", len(got))
	}
	if got[0].Remaining.String() != "Delayed" || !got[0].CanEdit {
		t.Fatalf("unexpected delayed view: %+v", got[0])
	}
	if got[1].Remaining.String() != "1d 23h" {
		t.Fatalf("unexpected countdown %q", got[1].Remaining.String())
	}
}

func TestCatalogService_PlayersForMatchUsingMockery(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	players := playermock.NewRepository(t)
	svc := NewCatalogService(matches, players, match.NewPolicy(0))

	matches.On("GetByID", anyCtx(), "m1").Return(upcomingMatch("m1", time.Hour), true, nil).Once()
	players.On("ListByMatch", anyCtx(), "m1").Return(testRoster(t, "m1"), nil).Once()

	got, err := svc.PlayersForMatch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("players for match: %v", err)
	}
	if len(got) != 36 {
		t.Fatalf("expected 36 players, got %d", len(got))
	}

	matches.On("GetByID", anyCtx(), "nope").Return(match.Match{}, false, nil).Once()
	if _, err := svc.PlayersForMatch(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_PlayerUsingMockery(t *testing.T) {
	t.Parallel()

	matches := matchmock.NewRepository(t)
	players := playermock.NewRepository(t)
	svc := NewCatalogService(matches, players, match.NewPolicy(0))

	players.On("GetByID", anyCtx(), "m1", "wk1").Return(player.Player{ID: "wk1", MatchID: "m1"}, true, nil).Once()
	players.On("GetByID", anyCtx(), "m1", "zz").Return(player.Player{}, false, nil).Once()

	if got, err := svc.Player(context.Background(), "m1", "wk1"); err != nil || got.ID != "wk1" {
		t.Fatalf("unexpected result: %+v %v", got, err)
	}
	if _, err := svc.Player(context.Background(), "m1", "zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Player(context.Background(), "", "wk1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
