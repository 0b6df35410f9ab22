package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status describes the lifecycle state of a cache entry.
type Status int

const (
	// StatusIdle means no read has been issued for the key yet.
	StatusIdle Status = iota
	// StatusPending means the first read is in flight.
	StatusPending
	// StatusSuccess means the last applied read succeeded.
	StatusSuccess
	// StatusError means the last applied read failed; the failure is
	// cached and not retried until the entry is invalidated.
	StatusError
)

// Loader performs the backend call for a key. The cache catches its
// error and caches it; loaders must return typed faults rather than
// panic.
type Loader func(ctx context.Context) (any, error)

// Snapshot is a read-only view of a cache entry.
type Snapshot struct {
	Status        Status
	Data          any
	Err           error
	Loading       bool
	Stale         bool
	LastFetchedAt time.Time
}

// call is one in-flight backend request. Waiters block on done and
// read value/err afterwards.
type call struct {
	seq   uint64
	done  chan struct{}
	value any
	err   error
}

// entry is the cache's record for one key. All fields are guarded by
// the store mutex.
type entry struct {
	status        Status
	value         any
	err           error
	lastFetchedAt time.Time
	stale         bool
	loader        Loader
	inflight      *call
	// latestSeq is bumped by every fetch start and every invalidation.
	// A completing call applies its result only when its sequence is
	// still the latest, so a superseded in-flight response can never
	// overwrite the result of a newer request.
	latestSeq uint64
}

// Store is an injectable query cache: a mapping from normalized keys to
// entries, with subscription callbacks for state transitions. Tests
// instantiate isolated stores; the application shares one.
type Store struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	staleAfter time.Duration
	subs       map[int]func(Key)
	nextSubID  int
}

// Option configures a Store.
type Option func(*Store)

// WithStaleAfter makes successful entries implicitly stale after d, so
// the next read triggers a background refetch while still serving the
// cached value. Zero (the default) disables implicit staleness.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Store) { s.staleAfter = d }
}

// NewStore creates an empty cache store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: map[Key]*entry{},
		subs:    map[int]func(Key){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the cached result for key, issuing the loader at most
// once per key no matter how many callers arrive concurrently. Both
// successful values and failures are cached; a cached failure is
// returned as-is until the entry is invalidated.
func (s *Store) Fetch(ctx context.Context, key Key, loader Loader) (any, error) {
	s.mu.Lock()
	e := s.ensure(key)
	e.loader = loader

	// Attach to an existing in-flight request rather than issuing a
	// second backend call.
	if e.inflight != nil {
		c := e.inflight
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.done:
			return c.value, c.err
		}
	}

	if (e.status == StatusSuccess || e.status == StatusError) && !s.entryStale(e) {
		value, err := e.value, e.err
		s.mu.Unlock()
		return value, err
	}

	c := s.begin(e)
	s.mu.Unlock()
	s.notify(key)

	value, err := loader(ctx)

	s.mu.Lock()
	s.complete(e, c, value, err)
	s.mu.Unlock()
	s.notify(key)

	return value, err
}

// Read returns a synchronous snapshot of the entry. Reading a stale
// entry with no request in flight schedules a background refetch using
// the entry's last loader; the stale value keeps being served until the
// refetch lands.
func (s *Store) Read(key Key) Snapshot {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return Snapshot{Status: StatusIdle}
	}

	refetch := s.entryStale(e) && e.inflight == nil && e.loader != nil
	var c *call
	if refetch {
		c = s.begin(e)
	}

	snap := Snapshot{
		Status:        e.status,
		Data:          e.value,
		Err:           e.err,
		Loading:       e.inflight != nil,
		Stale:         s.entryStale(e),
		LastFetchedAt: e.lastFetchedAt,
	}
	loader := e.loader
	s.mu.Unlock()

	if refetch {
		s.notify(key)
		go func() {
			value, err := loader(context.Background())
			s.mu.Lock()
			s.complete(e, c, value, err)
			s.mu.Unlock()
			s.notify(key)
		}()
	}

	return snap
}

// Invalidate marks the entry stale without blocking. The next read of
// the key refetches in the background; an in-flight request for the key
// is superseded and its eventual response is discarded.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		e.stale = true
		e.latestSeq++
	}
	s.mu.Unlock()
	if ok {
		s.notify(key)
	}
}

// InvalidateOp invalidates every cached entry for the operation,
// regardless of parameters.
func (s *Store) InvalidateOp(op string) {
	s.mu.Lock()
	var matched []Key
	for key, e := range s.entries {
		if key.Op == op {
			e.stale = true
			e.latestSeq++
			matched = append(matched, key)
		}
	}
	s.mu.Unlock()
	for _, key := range matched {
		s.notify(key)
	}
}

// Subscribe registers a callback invoked (without the store lock held)
// whenever an entry transitions state. The returned function removes
// the subscription.
func (s *Store) Subscribe(fn func(Key)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// ensure returns the entry for key, creating it if needed. Caller holds
// the lock.
func (s *Store) ensure(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{status: StatusIdle}
		s.entries[key] = e
	}
	return e
}

// begin starts a new in-flight call for the entry. Caller holds the
// lock.
func (s *Store) begin(e *entry) *call {
	e.latestSeq++
	c := &call{seq: e.latestSeq, done: make(chan struct{})}
	e.inflight = c
	if e.status == StatusIdle {
		e.status = StatusPending
	}
	return c
}

// complete records a finished call. The result is applied to the entry
// only when the call is still the newest request for the key; waiters
// always receive the call's own result either way. Caller holds the
// lock.
func (s *Store) complete(e *entry, c *call, value any, err error) {
	if e.inflight == c {
		e.inflight = nil
	}

	if c.seq == e.latestSeq {
		e.value = value
		e.err = err
		e.lastFetchedAt = time.Now()
		e.stale = false
		if err != nil {
			e.status = StatusError
		} else {
			e.status = StatusSuccess
		}
	}

	c.value = value
	c.err = err
	close(c.done)
}

// entryStale reports whether the entry needs refetching. Caller holds
// the lock.
func (s *Store) entryStale(e *entry) bool {
	if e.stale {
		return true
	}
	if s.staleAfter > 0 && e.status == StatusSuccess && time.Since(e.lastFetchedAt) > s.staleAfter {
		return true
	}
	return false
}

// notify invokes subscribers outside the lock.
func (s *Store) notify(key Key) {
	s.mu.Lock()
	fns := make([]func(Key), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// Fetch is the typed convenience wrapper around Store.Fetch.
func Fetch[T any](ctx context.Context, s *Store, key Key, loader func(context.Context) (T, error)) (T, error) {
	var zero T

	value, err := s.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T, want %T", key, value, zero)
	}
	return typed, nil
}
