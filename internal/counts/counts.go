// Package counts aggregates per-workspace executable counts for the
// workspace overview. Each workspace resolves through its own cache
// entry, so one failing workspace neither blocks nor poisons the rest.
package counts

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"execlens/internal/backend"
	"execlens/internal/entity"
	"execlens/internal/querycache"
)

// Result is the count outcome for one workspace. A failed backend call
// degrades to a zero count with the fault recorded.
type Result struct {
	Count   int
	Loading bool
	Err     error
}

// Aggregator resolves executable counts per workspace through the
// query cache.
type Aggregator struct {
	store   *querycache.Store
	invoker backend.Invoker
	logger  *log.Logger

	mu      sync.Mutex
	results map[string]Result
}

// New creates an aggregator backed by the given invoker and cache
// store.
func New(invoker backend.Invoker, store *querycache.Store, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		store:   store,
		invoker: invoker,
		logger:  logger,
		results: map[string]Result{},
	}
}

// Resolve fetches the executable count for every workspace, one cached
// backend call each, concurrently. It blocks until all workspaces have
// settled; partial results are visible through Snapshot while it runs.
// A failing workspace logs a warning and lands as a zero count.
func (a *Aggregator) Resolve(ctx context.Context, workspaces []entity.Workspace) {
	a.mu.Lock()
	for _, ws := range workspaces {
		r := a.results[ws.Name]
		r.Loading = true
		a.results[ws.Name] = r
	}
	a.mu.Unlock()

	var wg sync.WaitGroup
	for _, ws := range workspaces {
		ws := ws
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.resolveOne(ctx, ws.Name)
		}()
	}
	wg.Wait()
}

func (a *Aggregator) resolveOne(ctx context.Context, workspace string) {
	req := backend.ListExecutablesRequest{Workspace: workspace}
	key := querycache.NewKey(backend.OpListExecutables, req)

	execs, err := querycache.Fetch(ctx, a.store, key,
		func(ctx context.Context) ([]entity.Executable, error) {
			return backend.ListExecutables(ctx, a.invoker, req)
		})

	result := Result{Count: len(execs), Err: err}
	if err != nil {
		result.Count = 0
		a.logger.Warn("workspace count unavailable", "workspace", workspace, "err", err)
	}

	a.mu.Lock()
	a.results[workspace] = result
	a.mu.Unlock()
}

// Refresh invalidates the cached count for one workspace.
func (a *Aggregator) Refresh(workspace string) {
	key := querycache.NewKey(backend.OpListExecutables,
		backend.ListExecutablesRequest{Workspace: workspace})
	a.store.Invalidate(key)
}

// Snapshot returns a copy of every per-workspace result without
// blocking.
func (a *Aggregator) Snapshot() map[string]Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]Result, len(a.results))
	for name, r := range a.results {
		out[name] = r
	}
	return out
}

// CountFor returns the count for one workspace; unknown or failed
// workspaces report zero.
func (a *Aggregator) CountFor(workspace string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.results[workspace].Count
}

// IsLoadingFor reports whether one workspace is still resolving.
func (a *Aggregator) IsLoadingFor(workspace string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.results[workspace].Loading
}

// ErrorFor returns the recorded fault for one workspace, if any.
func (a *Aggregator) ErrorFor(workspace string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.results[workspace].Err
}

// IsLoading reports whether any workspace is still resolving.
func (a *Aggregator) IsLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.results {
		if r.Loading {
			return true
		}
	}
	return false
}

// HasErrors reports whether any workspace failed to resolve.
func (a *Aggregator) HasErrors() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// TotalCount sums every workspace's count; failed workspaces
// contribute zero.
func (a *Aggregator) TotalCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, r := range a.results {
		total += r.Count
	}
	return total
}
