package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage/internal/logging"
	"github.com/mengchil/visage/pkg/domain"
)

func baseFace() domain.Tree {
	return domain.Tree{
		"eyes": domain.Tree{
			"left":  domain.Tree{"openness": domain.Number(0.8)},
			"right": domain.Tree{"openness": domain.Number(0.8)},
		},
		"gaze":  domain.Tree{"x": domain.Number(0.1), "y": domain.Number(-0.2)},
		"mouth": domain.Tree{"x": domain.Number(0), "y": domain.Number(0), "curve": domain.Number(4)},
	}
}

func TestComposeAppliesLayersInOrder(t *testing.T) {
	c := NewCompositor(logging.NewNop())
	motion := domain.Tree{"mouth": domain.Tree{"curve": domain.Number(2)}}
	live := LivenessSample{BlinkScale: 1, JitterX: 0.05, JitterY: -0.03}
	at := time.Now()

	snap := c.Compose(baseFace(), motion, live, "happy", "#FFFF00", 7, at)

	assert.Equal(t, uint64(7), snap.Seq)
	assert.Equal(t, at, snap.At)
	assert.Equal(t, "happy", snap.ExpressionID)
	assert.Equal(t, "#FFFF00", snap.Color)

	curve, _ := snap.Params.NumberAt(domain.PathMouthCurve)
	assert.InDelta(t, 6.0, curve, 1e-9, "base + motion offset")

	gx, _ := snap.Params.NumberAt(domain.PathGazeX)
	assert.InDelta(t, 0.15, gx, 1e-9)
	my, _ := snap.Params.NumberAt(domain.PathMouthY)
	assert.InDelta(t, -0.03, my, 1e-9)

	color, ok := snap.Params.At("color")
	require.True(t, ok)
	assert.Equal(t, domain.Text("#FFFF00"), color)
}

func TestComposeDoesNotMutateBase(t *testing.T) {
	c := NewCompositor(logging.NewNop())
	base := baseFace()
	live := LivenessSample{BlinkScale: 0, JitterX: 1, JitterY: 1}

	c.Compose(base, domain.Tree{"mouth": domain.Tree{"curve": domain.Number(9)}}, live, "x", "#000000", 1, time.Now())

	open, _ := base.NumberAt(domain.PathEyeLeftOpenness)
	assert.Equal(t, 0.8, open)
	curve, _ := base.NumberAt(domain.PathMouthCurve)
	assert.Equal(t, 4.0, curve)
	_, hasColor := base.At("color")
	assert.False(t, hasColor)
}

func TestComposeBlinkScalesOpenness(t *testing.T) {
	c := NewCompositor(logging.NewNop())

	snap := c.Compose(baseFace(), domain.Tree{}, LivenessSample{BlinkScale: 0, JitterX: 0, JitterY: 0}, "n", "#FFFFFF", 1, time.Now())
	for _, path := range domain.EyeOpennessPaths {
		open, ok := snap.Params.NumberAt(path)
		require.True(t, ok)
		assert.Equal(t, 0.0, open, path)
	}

	// blink never opens the eyes beyond the interpolated base
	snap = c.Compose(baseFace(), domain.Tree{}, LivenessSample{BlinkScale: 1, JitterX: 0, JitterY: 0}, "n", "#FFFFFF", 2, time.Now())
	open, _ := snap.Params.NumberAt(domain.PathEyeLeftOpenness)
	assert.Equal(t, 0.8, open)
}

func TestComposeSkipsUnknownMotionChannels(t *testing.T) {
	c := NewCompositor(logging.NewNop())
	motion := domain.Tree{
		"mouth": domain.Tree{"curve": domain.Number(1)},
		"tail":  domain.Tree{"wag": domain.Number(3)},
	}

	snap := c.Compose(baseFace(), motion, LivenessSample{BlinkScale: 1}, "n", "#FFFFFF", 1, time.Now())

	curve, _ := snap.Params.NumberAt(domain.PathMouthCurve)
	assert.InDelta(t, 5.0, curve, 1e-9, "valid offsets still land")
	_, ok := snap.Params.NumberAt("tail.wag")
	assert.False(t, ok, "unknown channels are dropped, not invented")
}

func TestComposeJitterSkipsMissingChannels(t *testing.T) {
	c := NewCompositor(logging.NewNop())
	base := domain.Tree{"mouth": domain.Tree{"curve": domain.Number(0)}}

	snap := c.Compose(base, domain.Tree{}, LivenessSample{BlinkScale: 1, JitterX: 0.5, JitterY: 0.5}, "n", "#FFFFFF", 1, time.Now())

	_, ok := snap.Params.NumberAt(domain.PathGazeX)
	assert.False(t, ok)
}
