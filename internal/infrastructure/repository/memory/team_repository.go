package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(items []team.Team) *TeamRepository {
	teams := make(map[string]team.Team, len(items))
	for _, item := range items {
		teams[item.ID] = item.Clone()
	}
	return &TeamRepository{teams: teams}
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[item.ID]; exists {
		return fmt.Errorf("team id %s already exists", item.ID)
	}
	if item.Version == 0 {
		item.Version = 1
	}
	r.teams[item.ID] = item.Clone()
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID, matchID string) ([]team.Team, error) {
	return r.list(func(t team.Team) bool {
		return t.UserID == userID && (matchID == "" || t.MatchID == matchID)
	}), nil
}

func (r *TeamRepository) ListByMatch(_ context.Context, matchID string) ([]team.Team, error) {
	return r.list(func(t team.Team) bool { return t.MatchID == matchID }), nil
}

func (r *TeamRepository) ReplaceSelection(_ context.Context, item team.Team, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.teams[item.ID]
	if !ok || current.Version != expectedVersion {
		return fmt.Errorf("%w: team=%s expected_version=%d", team.ErrVersionConflict, item.ID, expectedVersion)
	}

	current.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	current.CaptainID = item.CaptainID
	current.ViceCaptainID = item.ViceCaptainID
	current.UpdatedAt = item.UpdatedAt
	current.Version++
	r.teams[item.ID] = current
	return nil
}

func (r *TeamRepository) UpdateTotalPoints(_ context.Context, teamID string, points int64, computedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.teams[teamID]
	if !ok {
		return nil
	}
	if current.PointsComputedAt != nil && current.PointsComputedAt.After(computedAt) {
		return nil
	}
	at := computedAt
	current.TotalPoints = points
	current.PointsComputedAt = &at
	r.teams[teamID] = current
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teams, teamID)
	return nil
}

func (r *TeamRepository) list(keep func(team.Team) bool) []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.teams {
		if keep(item) {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
