package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/mengchil/visage/internal/logging"
	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
)

// TickSource produces one composited frame per call. *visage.Engine
// satisfies it.
type TickSource interface {
	Tick(ctx context.Context) domain.Snapshot
}

// Runner owns the frame cadence.
type Runner struct {
	Engine     TickSource
	Logger     *slog.Logger
	FPS        int
	Publishers []ports.SnapshotPublisher
}

// New creates a runner for the given engine.
func New(engine TickSource, opts ...Option) *Runner {
	r := &Runner{
		Engine: engine,
		Logger: logging.NewNop(),
		FPS:    domain.DefaultFPS,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ticks the engine until ctx is cancelled. A frame that takes
// longer than its slot delays the next tick instead of bursting to
// catch up.
func (r *Runner) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(r.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Logger.Info("frame loop started", "fps", r.FPS)
	defer r.Logger.Info("frame loop stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap := r.Engine.Tick(ctx)
			r.publish(ctx, snap)
		}
	}
}

func (r *Runner) publish(ctx context.Context, snap domain.Snapshot) {
	for _, p := range r.Publishers {
		if err := p.Publish(ctx, snap); err != nil {
			r.Logger.Warn("frame publish failed", "seq", snap.Seq, "err", err)
		}
	}
}
