package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
	basecache "github.com/riskibarqy/cricket-fantasy/internal/platform/cache"
)

// windowBucket groups window queries so callers passing time.Now share entries.
const windowBucket = time.Minute

// MatchRepository caches reads. Window results are widened to whole buckets, so
// callers must still filter against their own bounds.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	fromBucket := from.UTC().Truncate(windowBucket)
	toBucket := to.UTC().Truncate(windowBucket).Add(windowBucket)
	key := "match:window:" + strconv.FormatInt(fromBucket.Unix(), 10) + ":" + strconv.FormatInt(toBucket.Unix(), 10)

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListStartingBetween(ctx, fromBucket, toBucket)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

// PlayerRepository caches rosters per match and drops them when points change.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByMatch(ctx context.Context, matchID string) ([]player.Player, error) {
	key := "player:match:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return clonePlayers(items), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, matchID, playerID string) (player.Player, bool, error) {
	key := "player:id:" + matchID + ":" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *PlayerRepository) UpdatePoints(ctx context.Context, matchID string, points map[string]int64, at time.Time) error {
	err := r.next.UpdatePoints(ctx, matchID, points, at)
	r.Invalidate(ctx, matchID)
	return err
}

// Invalidate drops every cached roster entry of the match.
func (r *PlayerRepository) Invalidate(ctx context.Context, matchID string) {
	r.cache.Delete(ctx, "player:match:"+matchID)
	r.cache.DeletePrefix(ctx, "player:id:"+matchID+":")
}

// Bypass reads the backing store directly while writes still drop this cache.
// Recompute reads through it because another replica may have ingested points
// this process never saw.
func (r *PlayerRepository) Bypass() player.Repository {
	return bypassPlayers{cached: r}
}

type bypassPlayers struct {
	cached *PlayerRepository
}

func (b bypassPlayers) ListByMatch(ctx context.Context, matchID string) ([]player.Player, error) {
	return b.cached.next.ListByMatch(ctx, matchID)
}

func (b bypassPlayers) GetByID(ctx context.Context, matchID, playerID string) (player.Player, bool, error) {
	return b.cached.next.GetByID(ctx, matchID, playerID)
}

func (b bypassPlayers) UpdatePoints(ctx context.Context, matchID string, points map[string]int64, at time.Time) error {
	return b.cached.UpdatePoints(ctx, matchID, points, at)
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
