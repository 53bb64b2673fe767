// Package memory provides the in-memory StateStore, used by tests and
// hosts that do not need restart persistence.
package memory

import (
	"context"
	"sync"

	"github.com/mengchil/visage/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]domain.ExpressionRecord
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]domain.ExpressionRecord)}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, key string, rec *domain.ExpressionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = *rec
	return nil
}

// Load retrieves the record, or domain.ErrNoSavedState.
func (s *Store) Load(ctx context.Context, key string) (*domain.ExpressionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNoSavedState
	}
	// value copy keeps callers from mutating the stored record
	return &rec, nil
}

// Delete removes the record. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
