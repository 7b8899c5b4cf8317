package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	mu             sync.RWMutex
	playersByMatch map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	playersByMatch := make(map[string][]player.Player)
	for _, p := range players {
		playersByMatch[p.MatchID] = append(playersByMatch[p.MatchID], p.Clone())
	}
	for matchID := range playersByMatch {
		sortRoster(playersByMatch[matchID])
	}

	return &PlayerRepository{playersByMatch: playersByMatch}
}

func (r *PlayerRepository) ListByMatch(_ context.Context, matchID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByMatch[matchID]
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		out = append(out, p.Clone())
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, matchID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.playersByMatch[matchID] {
		if p.ID == playerID {
			return p.Clone(), true, nil
		}
	}

	return player.Player{}, false, nil
}

// UpdatePoints applies all values or none.
func (r *PlayerRepository) UpdatePoints(_ context.Context, matchID string, points map[string]int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.playersByMatch[matchID]
	index := make(map[string]int, len(rows))
	for i, p := range rows {
		index[p.ID] = i
	}
	for id := range points {
		if _, ok := index[id]; !ok {
			return fmt.Errorf("player=%s not in match=%s", id, matchID)
		}
	}

	for id, value := range points {
		i := index[id]
		updatedAt := at
		rows[i].Points = value
		rows[i].PointsUpdatedAt = &updatedAt
	}

	return nil
}

func sortRoster(rows []player.Player) {
	rank := make(map[player.Role]int, len(player.Roles))
	for i, role := range player.Roles {
		rank[role] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rank[rows[i].Role] != rank[rows[j].Role] {
			return rank[rows[i].Role] < rank[rows[j].Role]
		}
		return rows[i].ID < rows[j].ID
	})
}
