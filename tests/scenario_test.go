// Package tests holds end-to-end scenarios across the public surface:
// engine, frame loop, HTTP control and the remote channel together.
package tests

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage"
	"github.com/mengchil/visage/pkg/domain"
)

// The canonical mood swing: neutral face told to be happy eases toward
// the target frame by frame while the color switches instantly.
func TestNeutralToHappyTransition(t *testing.T) {
	engine, err := visage.New()
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()
	first := engine.Tick(ctx)
	openStart, _ := first.Params.NumberAt(domain.PathEyeLeftOpenness)
	require.Equal(t, 1.0, openStart)

	require.NoError(t, engine.SetExpression("happy"))

	var last domain.Snapshot
	prevDistance := math.Abs(openStart - 0.8)
	for i := 0; i < 120; i++ {
		last = engine.Tick(ctx)
		require.Equal(t, "#FFFF00", last.Color, "color latches on the first frame after the switch")

		open, ok := last.Params.NumberAt(domain.PathEyeLeftOpenness)
		require.True(t, ok)
		distance := math.Abs(open - 0.8)
		assert.LessOrEqual(t, distance, prevDistance+1e-9, "frame %d moves toward the target", i)
		prevDistance = distance
	}

	assert.Less(t, prevDistance, 0.001, "converged after 120 frames")
	assert.Equal(t, "happy", last.ExpressionID)
}

// Snapshots carry the full canonical tree and the latched color leaf.
func TestSnapshotShape(t *testing.T) {
	engine, err := visage.New()
	require.NoError(t, err)
	defer engine.Close()

	snap := engine.Tick(context.Background())

	for _, path := range []string{
		domain.PathEyeLeftOpenness,
		domain.PathEyeRightOpenness,
		domain.PathGazeX,
		domain.PathGazeY,
		domain.PathMouthX,
		domain.PathMouthY,
		domain.PathMouthCurve,
	} {
		_, ok := snap.Params.NumberAt(path)
		assert.True(t, ok, path)
	}

	colorLeaf, ok := snap.Params.At("color")
	require.True(t, ok)
	assert.Equal(t, domain.Text(snap.Color), colorLeaf)
}

// Manual parameter tuning survives a remote push for the hold window.
func TestManualHoldAgainstRemote(t *testing.T) {
	engine, err := visage.New()
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, engine.SetParams(
		domain.Tree{"mouth": domain.Tree{"curve": domain.Number(6)}},
		200*time.Millisecond,
	))

	applied, err := engine.ApplyRemote("sad")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "neutral", engine.CurrentExpression())

	require.Eventually(t, func() bool {
		applied, err := engine.ApplyRemote("sad")
		return err == nil && applied
	}, 2*time.Second, 20*time.Millisecond, "hold expires")
	assert.Equal(t, "sad", engine.CurrentExpression())
}

// Blinks happen on their own: with default timings the first blink
// lands three seconds in. Run a tight tick loop and watch the eyes.
func TestAutonomousBlinkCloses(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the 3s first blink")
	}

	engine, err := visage.New()
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()
	require.Eventually(t, func() bool {
		snap := engine.Tick(ctx)
		open, _ := snap.Params.NumberAt(domain.PathEyeLeftOpenness)
		return open == 0
	}, 5*time.Second, 5*time.Millisecond, "eyes close during the blink hold")
}
