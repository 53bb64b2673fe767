package visage

import (
	"context"

	"github.com/mengchil/visage/pkg/runner"
)

// Run drives the engine at a fixed frame rate until ctx is cancelled.
// It is a thin convenience over runner.New for hosts that do not need
// to own the loop.
func (e *Engine) Run(ctx context.Context, opts ...runner.Option) error {
	return runner.New(e, opts...).Run(ctx)
}
