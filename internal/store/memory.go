// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is the default persistence layer for active rounds when durability is
// not required.
//
// Characteristics:
//   - Stores round snapshots keyed by ID in a map; Get returns a fresh
//     *game.Round, so callers never share mutable state through the store.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Entries older than the TTL are dropped lazily on access.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hangdle/go-server/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired round IDs.
var ErrNotFound = errors.New("store: round not found")

// Store defines the persistence interface for active rounds.
// Implementations may be backed by memory (this file) or Redis.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, r *game.Round) error

	// Get retrieves a round by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Round, error)

	// Delete removes a round; deleting a missing round is not an error.
	Delete(ctx context.Context, id string) error
}

type memEntry struct {
	snap  game.Snapshot
	saved time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex        // guards rounds
	rounds map[string]memEntry // keyed by Round.ID
	ttl    time.Duration       // 0 keeps rounds forever
	now    func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{rounds: make(map[string]memEntry), ttl: ttl, now: time.Now}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = memEntry{snap: r.Snapshot(), saved: m.now()}
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Round, error) {
	m.mu.RLock()
	e, ok := m.rounds[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().Sub(e.saved) > m.ttl {
		_ = m.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return game.Restore(e.snap)
}

// Delete removes the round from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, id)
	return nil
}
