// Package store persists shared subnet plans for the HTTP server.
//
// A stored plan is the encoded share token plus bookkeeping metadata,
// addressed by a short random id that can be exchanged instead of the full
// token. The Store interface supports several backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for single-instance deployments
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage when plans should survive restarts
//     and be queryable
//
// All backends store the token opaquely; validation and decoding stay in
// the plan package.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a plan id does not exist.
	ErrNotFound = errors.New("plan not found")

	// ErrEmptyToken is returned when an empty token is saved.
	ErrEmptyToken = errors.New("empty plan token")
)

// Record is a stored plan: the opaque share token plus metadata.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Token     string    `json:"token" bson:"token"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for plan storage backends.
type Store interface {
	// Save stores a token under a fresh id and returns the record.
	Save(ctx context.Context, token string) (*Record, error)

	// Get retrieves a record by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewID returns a fresh random plan id.
func NewID() string {
	return uuid.NewString()
}

// Memory is an in-memory Store for development and tests.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

// Save stores a token under a fresh id.
func (m *Memory) Save(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	rec := &Record{ID: NewID(), Token: token, CreatedAt: time.Now().UTC()}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	return rec, nil
}

// Get retrieves a record by id.
func (m *Memory) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *rec
	return &out, nil
}

// Delete removes a record.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

// Close does nothing for the in-memory store.
func (m *Memory) Close() error { return nil }

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
