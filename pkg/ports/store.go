package ports

import (
	"context"

	"github.com/mengchil/visage/pkg/domain"
)

// StateStore persists the last applied expression so a restarted engine
// can resume the face where it was.
type StateStore interface {
	// Save persists the record under the given key.
	Save(ctx context.Context, key string, rec *domain.ExpressionRecord) error

	// Load retrieves the record for the given key.
	// Returns domain.ErrNoSavedState if nothing was saved.
	Load(ctx context.Context, key string) (*domain.ExpressionRecord, error)

	// Delete removes the record for the given key.
	Delete(ctx context.Context, key string) error
}
