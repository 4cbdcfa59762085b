// internal/store/memory.go
//
// In-memory implementation of the puzzle record Store interface.
// This is a lightweight persistence layer for live puzzle sessions: the
// server keeps generated instances here so later validate/solution calls can
// find them without re-deriving anything.
//
// Characteristics:
//   - Stores *Record objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; share codes and the SQL layer
//     cover durability.
//   - ErrNotFound is returned for missing record IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
)

// ErrNotFound is returned by Get when no record carries the requested ID.
var ErrNotFound = errors.New("puzzle record not found")

// Record is one stored puzzle session: the generated instance plus the
// metadata the HTTP layer needs to serve it back.
type Record struct {
	ID        string
	CreatedAt time.Time
	Instance  *puzzle.Instance
}

// Store defines the persistence interface for puzzle records.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a puzzle record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound when missing.
	Get(ctx context.Context, id string) (*Record, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex       // guards records map
	records map[string]*Record // keyed by Record.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]*Record)}
}

// Save adds or updates the record in the map.
func (m *memory) Save(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return nil
}

// Get looks up a record by ID.
func (m *memory) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.records[id]; ok {
		return rec, nil
	}
	return nil, ErrNotFound
}
