package runner

import (
	"log/slog"

	"github.com/mengchil/visage/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithFPS sets the frame rate (default 60).
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.FPS = fps
		}
	}
}

// WithPublisher registers a snapshot publisher. May be given multiple
// times; frames fan out in registration order.
func WithPublisher(p ports.SnapshotPublisher) Option {
	return func(r *Runner) {
		r.Publishers = append(r.Publishers, p)
	}
}
