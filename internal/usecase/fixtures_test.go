package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func anyCtx() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func upcomingMatch(id string, startIn time.Duration) match.Match {
	return match.Match{
		ID:         id,
		Home:       match.Side{Name: "Mumbai Indians", Short: "MI"},
		Away:       match.Side{Name: "Chennai Super Kings", Short: "CSK"},
		Venue:      "Wankhede",
		StartTime:  fixedNow.Add(startIn),
		Status:     match.StatusUpcoming,
		SpotsTotal: 100,
	}
}

// testRoster has nine players per role; validTestSelection totals 99.5 credits.
func testRoster(t *testing.T, matchID string) []player.Player {
	t.Helper()

	credits := map[player.Role][]string{
		player.RoleWicketKeeper: {"9.0", "8.5", "8.0", "7.5", "7.0", "9.5", "10.0", "8.0", "7.0"},
		player.RoleBatter:       {"9.5", "9.0", "9.0", "8.5", "10.5", "8.0", "7.5", "7.0", "10.0"},
		player.RoleAllRounder:   {"9.0", "9.0", "8.5", "8.0", "10.0", "7.5", "7.0", "9.5", "8.0"},
		player.RoleBowler:       {"9.0", "9.0", "9.5", "9.0", "8.5", "8.0", "7.5", "7.0", "10.5"},
	}
	prefixes := map[player.Role]string{
		player.RoleWicketKeeper: "wk",
		player.RoleBatter:       "bat",
		player.RoleAllRounder:   "ar",
		player.RoleBowler:       "bowl",
	}

	var roster []player.Player
	for _, role := range player.Roles {
		for i, raw := range credits[role] {
			c, err := player.ParseCredits(raw)
			if err != nil {
				t.Fatalf("parse credits: %v", err)
			}
			roster = append(roster, player.Player{
				ID:      fmt.Sprintf("%s%d", prefixes[role], i+1),
				MatchID: matchID,
				Name:    fmt.Sprintf("%s %d", role, i+1),
				Role:    role,
				Credits: c,
			})
		}
	}
	return roster
}

func validTestSelection() team.Selection {
	return team.Selection{
		PlayerIDs:     []string{"wk1", "bat1", "bat2", "bat3", "bat4", "ar1", "ar2", "bowl1", "bowl2", "bowl3", "bowl4"},
		CaptainID:     "bat1",
		ViceCaptainID: "bowl3",
	}
}

func withPoints(roster []player.Player, points map[string]int64) []player.Player {
	at := fixedNow
	out := make([]player.Player, 0, len(roster))
	for _, p := range roster {
		if v, ok := points[p.ID]; ok {
			p.Points = v
			p.PointsUpdatedAt = &at
		}
		out = append(out, p)
	}
	return out
}
