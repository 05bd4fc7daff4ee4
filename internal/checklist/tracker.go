package checklist

import (
	"context"
	"log/slog"
	"sync"
)

// Tracker owns one checklist State under a fixed cache key. The state is
// loaded once on construction and saved after every mutation. Safe for
// concurrent use.
type Tracker struct {
	mu     sync.Mutex
	key    string
	state  State
	cache  *Cache
	logger *slog.Logger
}

func NewTracker(ctx context.Context, cache *Cache, key string, logger *slog.Logger) *Tracker {
	return &Tracker{
		key:    key,
		state:  cache.Load(ctx, key),
		cache:  cache,
		logger: logger,
	}
}

// Toggle flips index i, persists, and returns the new value. A failed save is
// logged; the in-memory toggle still applies.
func (t *Tracker) Toggle(ctx context.Context, i int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	checked := t.state.Toggle(i)
	t.persist(ctx)
	return checked
}

// Reset clears every index and persists the empty state.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = State{}
	t.persist(ctx)
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

func (t *Tracker) persist(ctx context.Context) {
	if err := t.cache.Save(ctx, t.key, t.state); err != nil {
		t.logger.Warn("failed to persist checklist", "key", t.key, "error", err)
	}
}
