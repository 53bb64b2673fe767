package ports

import (
	"context"

	"github.com/mengchil/visage/pkg/domain"
)

// SnapshotPublisher receives every composited frame from the driver loop.
// Publish must not block the frame cadence; slow sinks should drop frames
// internally.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
	Close() error
}
