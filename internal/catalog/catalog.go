package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"execlens/internal/backend"
	"execlens/internal/display"
	"execlens/internal/entity"
	"execlens/internal/querycache"
)

// DefaultSearchDebounce is the quiescence window applied to search
// input before it takes effect.
const DefaultSearchDebounce = 300 * time.Millisecond

// View is a non-blocking snapshot of the catalog: the filtered result
// set plus the cache's loading and error state for the current
// server-side tuple.
type View struct {
	Executables []entity.Executable
	Loading     bool
	Err         error
}

// Options are the values selectable in filter controls, derived from
// the current result set.
type Options struct {
	// Namespaces is scoped to the selected workspace and includes the
	// RootNamespace sentinel first when any record has no namespace.
	Namespaces []string
	// Tags is the sorted union of all tags.
	Tags []string
	// Verbs is the sorted union of verbs and verb aliases.
	Verbs []string
}

// Catalog is the executable catalog: it owns the filter state, splits
// it into a server-side request tuple and a client-side refinement
// pipeline, and serves results through the query cache.
type Catalog struct {
	store   *querycache.Store
	invoker backend.Invoker

	mu              sync.Mutex
	filters         FilterState
	debouncedSearch string
	debounce        time.Duration
	searchTimer     *time.Timer
	collator        *collate.Collator
	subs            map[int]func()
	nextSubID       int
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithSearchDebounce overrides the search quiescence window. Zero
// applies search input immediately, which tests rely on.
func WithSearchDebounce(d time.Duration) CatalogOption {
	return func(c *Catalog) { c.debounce = d }
}

// New creates a catalog backed by the given invoker and cache store.
func New(invoker backend.Invoker, store *querycache.Store, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		store:    store,
		invoker:  invoker,
		debounce: DefaultSearchDebounce,
		collator: collate.New(language.Und, collate.Loose),
		subs:     map[int]func(){},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Filters returns the current filter state.
func (c *Catalog) Filters() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetFilters merges a partial filter update. Search changes are held
// back until the debounce window elapses; everything else applies
// immediately.
func (c *Catalog) SetFilters(u FilterUpdate) {
	c.mu.Lock()
	prev := c.filters
	c.filters = c.filters.Apply(u)

	if u.Search != nil && *u.Search != prev.Search {
		if c.searchTimer != nil {
			c.searchTimer.Stop()
		}
		if c.debounce <= 0 {
			c.debouncedSearch = c.filters.Search
		} else {
			pending := c.filters.Search
			c.searchTimer = time.AfterFunc(c.debounce, func() {
				c.mu.Lock()
				// Only land if the input has not moved on since.
				if c.filters.Search == pending {
					c.debouncedSearch = pending
				}
				c.mu.Unlock()
				c.notify()
			})
		}
	}
	c.mu.Unlock()
	c.notify()
}

// ClearFilters resets every filter, including any pending search input.
func (c *Catalog) ClearFilters() {
	c.mu.Lock()
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.filters = FilterState{}
	c.debouncedSearch = ""
	c.mu.Unlock()
	c.notify()
}

// Refresh invalidates the cache entry for the current server-side
// tuple; the next read refetches in the background.
func (c *Catalog) Refresh() {
	c.store.Invalidate(c.key())
}

// Subscribe registers a callback invoked when the filter state or the
// debounced search changes. Cache transitions are observed separately
// via the store.
func (c *Catalog) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Executables fetches (or serves from cache) the executables for the
// current server-side tuple and runs the client-side pipeline over
// them.
func (c *Catalog) Executables(ctx context.Context) ([]entity.Executable, error) {
	execs, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return c.refine(execs), nil
}

// View returns the catalog state without blocking. Loading and error
// states come from the cache entry, never from the debounce timer.
func (c *Catalog) View() View {
	snap := c.store.Read(c.key())

	view := View{Loading: snap.Loading, Err: snap.Err}
	if execs, ok := snap.Data.([]entity.Executable); ok {
		view.Executables = c.refine(execs)
	}
	return view
}

// Options derives the filter dropdown values from the current result
// set, before client-side refinement.
func (c *Catalog) Options(ctx context.Context) (Options, error) {
	execs, err := c.fetch(ctx)
	if err != nil {
		return Options{}, err
	}

	c.mu.Lock()
	workspace := c.filters.Workspace
	c.mu.Unlock()

	namespaces := map[string]bool{}
	hasRoot := false
	tags := map[string]bool{}
	verbs := map[string]bool{}
	for _, e := range execs {
		if workspace == "" || e.Workspace == workspace {
			if e.Namespace != "" {
				namespaces[e.Namespace] = true
			} else {
				hasRoot = true
			}
		}
		for _, tag := range e.Tags {
			tags[tag] = true
		}
		if e.Verb != "" {
			verbs[e.Verb] = true
		}
		for _, alias := range e.VerbAliases {
			verbs[alias] = true
		}
	}

	opts := Options{
		Namespaces: c.sorted(namespaces),
		Tags:       c.sorted(tags),
		Verbs:      c.sorted(verbs),
	}
	if hasRoot {
		opts.Namespaces = append([]string{RootNamespace}, opts.Namespaces...)
	}
	return opts, nil
}

// Workspaces lists every known workspace through the cache; it backs
// the workspace filter options.
func (c *Catalog) Workspaces(ctx context.Context) ([]entity.Workspace, error) {
	return querycache.Fetch(ctx, c.store, querycache.NewKey(backend.OpListWorkspaces, nil),
		func(ctx context.Context) ([]entity.Workspace, error) {
			return backend.ListWorkspaces(ctx, c.invoker)
		})
}

// Tree builds the namespace tree from the current filtered results.
func (c *Catalog) Tree(ctx context.Context) ([]TreeNode, error) {
	execs, err := c.Executables(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(execs), nil
}

// fetch resolves the cached executable list for the current
// server-side tuple, issuing at most one backend call per tuple.
func (c *Catalog) fetch(ctx context.Context) ([]entity.Executable, error) {
	req := c.request()
	return querycache.Fetch(ctx, c.store, querycache.NewKey(backend.OpListExecutables, req),
		func(ctx context.Context) ([]entity.Executable, error) {
			return backend.ListExecutables(ctx, c.invoker, req)
		})
}

// request derives the server-side filter tuple. The RootNamespace
// sentinel travels as an explicit empty-string namespace so the
// backend distinguishes "no namespace filter" from "root namespace
// only".
func (c *Catalog) request() backend.ListExecutablesRequest {
	c.mu.Lock()
	f := c.filters
	c.mu.Unlock()

	req := backend.ListExecutablesRequest{
		Workspace: f.Workspace,
		Tags:      f.Tags,
		Verb:      f.Verb,
	}
	switch f.Namespace {
	case "":
	case RootNamespace:
		root := ""
		req.Namespace = &root
	default:
		ns := f.Namespace
		req.Namespace = &ns
	}
	return req
}

func (c *Catalog) key() querycache.Key {
	return querycache.NewKey(backend.OpListExecutables, c.request())
}

// refine runs the client-side pipeline: search, visibility, type, root
// namespace, then a locale-aware sort by ref.
func (c *Catalog) refine(execs []entity.Executable) []entity.Executable {
	c.mu.Lock()
	f := c.filters
	term := strings.ToLower(strings.TrimSpace(c.debouncedSearch))
	c.mu.Unlock()

	filtered := make([]entity.Executable, 0, len(execs))
	for _, e := range execs {
		if term != "" && !e.MatchesSearch(term, display.CleanMarkdown(e.Description)) {
			continue
		}
		if f.Visibility != "" && e.Visibility.OrDefault() != f.Visibility {
			continue
		}
		if f.Type != "" && e.Type() != f.Type {
			continue
		}
		if f.Namespace == RootNamespace && e.Namespace != "" {
			continue
		}
		filtered = append(filtered, e)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sort.SliceStable(filtered, func(i, j int) bool {
		return c.collator.CompareString(filtered[i].Ref, filtered[j].Ref) < 0
	})
	return filtered
}

// sorted flattens a set into a locale-sorted slice. Caller must not
// hold the mutex.
func (c *Catalog) sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return c.collator.CompareString(out[i], out[j]) < 0
	})
	return out
}

func (c *Catalog) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
