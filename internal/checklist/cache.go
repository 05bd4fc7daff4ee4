package checklist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TTL is how long a saved state stays valid.
const TTL = 24 * time.Hour

// Store is a byte-oriented key-value store. Get reports ok=false for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
}

// entry is the persisted envelope. Expiry is in Unix milliseconds.
type entry struct {
	Data   State `json:"data"`
	Expiry int64 `json:"expiry"`
}

// Cache stores checklist states with a fixed time-to-live. Expired entries
// are never swept; they read as absent.
type Cache struct {
	store Store
	now   func() time.Time
}

func NewCache(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// Save stores state under key with an expiry of now + TTL.
func (c *Cache) Save(ctx context.Context, key string, state State) error {
	data, err := json.Marshal(entry{
		Data:   state,
		Expiry: c.now().Add(TTL).UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Load returns the state stored under key. Missing, expired, unreadable, and
// corrupt entries all yield an empty State.
func (c *Cache) Load(ctx context.Context, key string) State {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return State{}
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return State{}
	}
	if e.Expiry == 0 || c.now().UnixMilli() > e.Expiry || e.Data == nil {
		return State{}
	}
	return e.Data
}
