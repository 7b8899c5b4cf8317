package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errLoad = errors.New("roster unavailable")

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "roster", nil
	}

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "player:match:m1", loader)
			if err != nil {
				results <- err
				return
			}
			results <- v
		}()
	}

	// Give the goroutines time to join the in-flight load before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != "roster" {
			t.Fatalf("unexpected result %v", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	tests := []struct {
		name      string
		loader    func(*atomic.Int32) func(context.Context) (any, error)
		wantCalls int32
		wantErr   error
	}{
		{
			name: "second call served from cache",
			loader: func(calls *atomic.Int32) func(context.Context) (any, error) {
				return func(context.Context) (any, error) {
					calls.Add(1)
					return "cached", nil
				}
			},
			wantCalls: 1,
		},
		{
			name: "errors are not cached",
			loader: func(calls *atomic.Int32) func(context.Context) (any, error) {
				return func(context.Context) (any, error) {
					calls.Add(1)
					return nil, errLoad
				}
			},
			wantCalls: 2,
			wantErr:   errLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(time.Minute)
			var calls atomic.Int32
			loader := tt.loader(&calls)

			for i := 0; i < 2; i++ {
				_, err := store.GetOrLoad(context.Background(), "k", loader)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("call %d: got err %v want %v", i, err, tt.wantErr)
				}
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Fatalf("loader called %d times, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestStore_GetOrLoad_RequiresLoader(t *testing.T) {
	if _, err := NewStore(time.Minute).GetOrLoad(context.Background(), "k", nil); !errors.Is(err, errNoLoader) {
		t.Fatalf("expected errNoLoader, got %v", err)
	}
}

func TestStore_InvalidationDuringLoadIsNotOverwritten(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	v, err := store.GetOrLoad(ctx, "player:match:m1", func(context.Context) (any, error) {
		// Points land while the stale roster is being read.
		store.DeletePrefix(ctx, "player:")
		return "stale", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if v != "stale" {
		t.Fatalf("caller still receives its own load, got %v", v)
	}
	if _, ok := store.Get(ctx, "player:match:m1"); ok {
		t.Fatalf("stale load must not be cached after invalidation")
	}
}

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "match:id:m1", "match")
	if _, ok := store.Get(context.Background(), "match:id:m1"); !ok {
		t.Fatalf("expected fresh entry to be returned")
	}

	now = now.Add(61 * time.Second)
	if _, ok := store.Get(context.Background(), "match:id:m1"); ok {
		t.Fatalf("expected expired entry to be evicted")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected empty store after eviction, got %d", got)
	}
}

func TestStore_ZeroTTLKeepsEntries(t *testing.T) {
	store := NewStore(0)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	now = now.Add(24 * time.Hour)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("zero ttl entries must not expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "player:match:m1", 1)
	store.Set(ctx, "player:id:m1:p1", 2)
	store.Set(ctx, "match:id:m1", 3)

	store.DeletePrefix(ctx, "player:")

	if got := store.Len(); got != 1 {
		t.Fatalf("expected one entry left, got %d", got)
	}
	if _, ok := store.Get(ctx, "match:id:m1"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}
