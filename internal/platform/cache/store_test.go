package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "standings:t1", 1)
	if _, ok := store.Get(context.Background(), "standings:t1"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(context.Background(), "standings:t1"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "standings:t1:players", 1)
	store.Set(ctx, "standings:t1:teams", 2)
	store.Set(ctx, "standings:t10:players", 3)

	store.DeletePrefix(ctx, "standings:t1:")

	if _, ok := store.Get(ctx, "standings:t1:players"); ok {
		t.Fatalf("expected players key to be removed")
	}
	if _, ok := store.Get(ctx, "standings:t10:players"); !ok {
		t.Fatalf("expected other tournament to stay cached")
	}
}

func TestLoad_TypedAndErrorsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls atomic.Int32

	_, err := Load(ctx, store, "k", func(context.Context) ([]string, error) {
		calls.Add(1)
		return nil, errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	got, err := Load(ctx, store, "k", func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"p1"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "p1" {
		t.Fatalf("unexpected value %v", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected failed load to be retried, calls=%d", calls.Load())
	}
}

func TestStore_StatsCountHitsMissesAndLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	loader := func(context.Context) (any, error) { return 6, nil }

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(ctx, "standings:t1:players", loader); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	store.Get(ctx, "standings:t2:players")

	want := Stats{Hits: 2, Misses: 2, Loads: 1}
	if got := store.Stats(); got != want {
		t.Fatalf("Stats()=%+v want %+v", got, want)
	}
}

var (
	errUnexpectedValue = errors.New("unexpected loaded value")
	errBoom            = errors.New("boom")
)
