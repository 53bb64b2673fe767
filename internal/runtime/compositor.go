package runtime

import (
	"log/slog"
	"time"

	"github.com/mengchil/visage/pkg/domain"
)

// Compositor merges Base + Motion + Liveness into one snapshot per frame.
// It holds no state beyond the logger; every frame starts from a fresh
// copy of the interpolated base.
type Compositor struct {
	logger *slog.Logger
}

// NewCompositor creates a compositor reporting shape problems to logger.
func NewCompositor(logger *slog.Logger) *Compositor {
	return &Compositor{logger: logger}
}

// Compose builds the frame in its fixed order: base copy, motion offsets,
// liveness jitter on the gaze/mouth positions, blink scaling on the eye
// openness channels (blink can only close, never open beyond the base),
// and finally the latched preset color.
func (c *Compositor) Compose(base, motion domain.Tree, live LivenessSample, exprID, color string, seq uint64, at time.Time) domain.Snapshot {
	working, err := domain.Add(base, motion)
	if err != nil {
		c.logger.Warn("motion offsets partially skipped", "err", err)
	}

	addIfPresent(working, domain.PathGazeX, live.JitterX)
	addIfPresent(working, domain.PathMouthX, live.JitterX)
	addIfPresent(working, domain.PathGazeY, live.JitterY)
	addIfPresent(working, domain.PathMouthY, live.JitterY)

	for _, path := range domain.EyeOpennessPaths {
		openness, ok := working.NumberAt(path)
		if !ok {
			continue
		}
		scaled := openness * live.BlinkScale
		if scaled > openness {
			scaled = openness
		}
		if scaled < 0 {
			scaled = 0
		}
		working.SetNumber(path, scaled)
	}

	working["color"] = domain.Text(color)

	return domain.Snapshot{
		Seq:          seq,
		At:           at,
		ExpressionID: exprID,
		Color:        color,
		Params:       working,
	}
}

func addIfPresent(tree domain.Tree, path string, delta float64) {
	if v, ok := tree.NumberAt(path); ok {
		tree.SetNumber(path, v+delta)
	}
}
