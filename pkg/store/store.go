// Package store provides persistent archiving of transform results.
//
// The engine itself is stateless; archiving is an outer-layer concern of the
// hosted API, letting clients share a permalink to a computed flow graph
// instead of re-uploading the network. Two implementations are provided:
// MongoStore for deployments and MemoryStore for tests and single-process
// use.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/transferflow/transferflow/pkg/flow"
)

// ErrNotFound is returned by Get when no record exists for the ID.
var ErrNotFound = errors.New("record not found")

// Record is an archived transform result with the options that produced it.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	Level     string      `json:"level" bson:"level"`
	FlowType  string      `json:"flow_type" bson:"flow_type"`
	Metric    string      `json:"metric" bson:"metric"`
	Result    flow.Result `json:"result" bson:"result"`
}

// NewRecord builds a Record with a fresh UUID and the current time.
func NewRecord(opts flow.Options, result *flow.Result) Record {
	return Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Level:     string(opts.Level),
		FlowType:  string(opts.FlowType),
		Metric:    string(opts.Metric),
		Result:    *result,
	}
}

// Store persists transform results.
type Store interface {
	// Save archives a record.
	Save(ctx context.Context, rec Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory Store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Save archives a record in memory.
func (s *MemoryStore) Save(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
