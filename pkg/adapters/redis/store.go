// Package redis persists the last applied expression in Redis, for
// fleets where several renderer hosts share one face state.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/mengchil/visage/pkg/domain"
)

// Store implements ports.StateStore on a Redis backend.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Redis store.
type Option func(*Store)

// WithPrefix namespaces every key (default "visage:").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL expires saved records after the given duration. Zero keeps
// them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// NewStore connects to the given Redis address.
func NewStore(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client, for hosts that already manage
// one.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "visage:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(key string) string {
	return s.prefix + "state:" + key
}

// Save persists the record as JSON.
func (s *Store) Save(ctx context.Context, key string, rec *domain.ExpressionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis store: marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis store: set: %w", err)
	}
	return nil
}

// Load retrieves the record, or domain.ErrNoSavedState.
func (s *Store) Load(ctx context.Context, key string) (*domain.ExpressionRecord, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrNoSavedState
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: get: %w", err)
	}

	var rec domain.ExpressionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("redis store: unmarshal: %w", err)
	}
	return &rec, nil
}

// Delete removes the record. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis store: del: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
