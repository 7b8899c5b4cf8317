package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(items []match.Match) *MatchRepository {
	matches := make(map[string]match.Match, len(items))
	for _, item := range items {
		matches[item.ID] = item
	}
	return &MatchRepository{matches: matches}
}

func (r *MatchRepository) ListStartingBetween(_ context.Context, from, to time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		if item.StartTime.After(from) && !item.StartTime.After(to) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

// Upsert stands in for the external match-status feed in local runs and tests.
func (r *MatchRepository) Upsert(_ context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[item.ID] = item
	return nil
}
