package querycache_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"execlens/internal/querycache"
)

func TestFetchDeduplicatesConcurrentCallers(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_executables", map[string]any{"workspace": "core"})

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "result", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.Fetch(context.Background(), key, loader)
			require.NoError(t, err)
			results[i] = value
		}()
	}

	// Let every caller reach the store before the loader finishes.
	require.Eventually(t, func() bool {
		return store.Read(key).Loading
	}, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "result", r)
	}
}

func TestFetchReturnsCachedValue(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_workspaces", nil)

	var calls atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return []string{"core"}, nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.Fetch(context.Background(), key, loader)
		require.NoError(t, err)
		assert.Equal(t, []string{"core"}, value)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchCachesFailuresUntilInvalidated(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_executables", nil)

	var calls atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, fmt.Errorf("backend unavailable")
		}
		return "recovered", nil
	}

	_, err := store.Fetch(context.Background(), key, loader)
	require.Error(t, err)

	// The failure is served from cache; the loader is not retried.
	_, err = store.Fetch(context.Background(), key, loader)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, querycache.StatusError, store.Read(key).Status)

	store.Invalidate(key)

	value, err := store.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, int32(2), calls.Load())
}

func TestReadRefetchesStaleEntryInBackground(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_executables", nil)

	var calls atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		n := calls.Add(1)
		return fmt.Sprintf("result-%d", n), nil
	}

	_, err := store.Fetch(context.Background(), key, loader)
	require.NoError(t, err)

	store.Invalidate(key)

	// The stale value keeps being served while the refetch runs.
	snap := store.Read(key)
	assert.Equal(t, "result-1", snap.Data)
	assert.Equal(t, querycache.StatusSuccess, snap.Status)

	require.Eventually(t, func() bool {
		snap := store.Read(key)
		return snap.Data == "result-2" && !snap.Stale
	}, time.Second, time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidationSupersedesInFlightCall(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_executables", nil)

	release := make(chan struct{})
	staleLoader := func(ctx context.Context) (any, error) {
		<-release
		return "superseded", nil
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := store.Fetch(context.Background(), key, staleLoader)
		errCh <- err
	}()
	require.Eventually(t, func() bool {
		return store.Read(key).Loading
	}, time.Second, time.Millisecond)

	// Invalidating while the call is in flight marks its eventual
	// response as outdated.
	store.Invalidate(key)
	close(release)
	require.NoError(t, <-errCh)

	// The superseded response was delivered to its waiter but never
	// applied to the entry; the next fetch hits the backend again.
	value, err := store.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
	assert.Equal(t, "fresh", store.Read(key).Data)
}

func TestInvalidateOpMatchesEveryParamVariant(t *testing.T) {
	store := querycache.NewStore()
	keyA := querycache.NewKey("list_executables", map[string]any{"workspace": "core"})
	keyB := querycache.NewKey("list_executables", map[string]any{"workspace": "infra"})
	other := querycache.NewKey("list_workspaces", nil)

	loader := func(ctx context.Context) (any, error) { return "v", nil }
	for _, k := range []querycache.Key{keyA, keyB, other} {
		_, err := store.Fetch(context.Background(), k, loader)
		require.NoError(t, err)
	}

	store.InvalidateOp("list_executables")

	assert.True(t, store.Read(keyA).Stale)
	assert.True(t, store.Read(keyB).Stale)
	assert.False(t, store.Read(other).Stale)
}

func TestSubscribeObservesTransitions(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_workspaces", nil)

	var mu sync.Mutex
	var seen []querycache.Key
	unsubscribe := store.Subscribe(func(k querycache.Key) {
		mu.Lock()
		seen = append(seen, k)
		mu.Unlock()
	})

	_, err := store.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return "v", nil
	})
	require.NoError(t, err)

	mu.Lock()
	notified := len(seen)
	mu.Unlock()
	require.GreaterOrEqual(t, notified, 2) // pending + settled
	assert.Equal(t, key, seen[0])

	unsubscribe()
	store.Invalidate(key)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, notified)
}

func TestTypedFetch(t *testing.T) {
	store := querycache.NewStore()
	key := querycache.NewKey("list_workspaces", nil)

	names, err := querycache.Fetch(context.Background(), store, key, func(ctx context.Context) ([]string, error) {
		return []string{"core", "infra"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "infra"}, names)

	// A second typed fetch with a mismatched type surfaces the conflict
	// instead of panicking.
	_, err = querycache.Fetch(context.Background(), store, key, func(ctx context.Context) (int, error) {
		return 0, nil
	})
	require.Error(t, err)
}

func TestStaleAfterAgesEntries(t *testing.T) {
	store := querycache.NewStore(querycache.WithStaleAfter(10 * time.Millisecond))
	key := querycache.NewKey("list_workspaces", nil)

	var calls atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return "v", nil
	}

	_, err := store.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	assert.False(t, store.Read(key).Stale)

	time.Sleep(20 * time.Millisecond)

	require.Eventually(t, func() bool {
		store.Read(key)
		return calls.Load() >= 2
	}, time.Second, time.Millisecond)
}
