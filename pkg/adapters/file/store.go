// Package file provides filesystem-backed adapters: a JSON state store
// for restart persistence and a YAML catalog preset source.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mengchil/visage/pkg/domain"
)

// Store implements ports.StateStore as one JSON file per key under a
// directory. Writes go through a temp file and rename, so a crash
// mid-write never leaves a torn record.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates the directory if needed and returns the store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save persists the record atomically.
func (s *Store) Save(ctx context.Context, key string, rec *domain.ExpressionRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("file store: rename: %w", err)
	}
	return nil
}

// Load retrieves the record, or domain.ErrNoSavedState.
func (s *Store) Load(ctx context.Context, key string) (*domain.ExpressionRecord, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path(key))
	s.mu.Unlock()

	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNoSavedState
	}
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	var rec domain.ExpressionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("file store: unmarshal: %w", err)
	}
	return &rec, nil
}

// Delete removes the record. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}
