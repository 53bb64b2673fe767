package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage/pkg/domain"
)

func TestAdvanceConvergesExponentially(t *testing.T) {
	tr := NewTransition(domain.Tree{"openness": domain.Number(1)})
	tr.SetTarget(domain.Tree{"openness": domain.Number(0.8)})

	for n := 1; n <= 80; n++ {
		cur, err := tr.Advance(0.1)
		require.NoError(t, err)

		got, ok := cur.NumberAt("openness")
		require.True(t, ok)
		want := 0.8 + 0.2*math.Pow(0.9, float64(n))
		assert.InDelta(t, want, got, 1e-12, "frame %d", n)
	}

	// after ~50 frames the error is below 0.001
	cur, _ := tr.Advance(0.1)
	got, _ := cur.NumberAt("openness")
	assert.InDelta(t, 0.8, got, 0.001)
}

func TestSetTargetLastWriteWins(t *testing.T) {
	tr := NewTransition(domain.Tree{"v": domain.Number(0)})
	tr.SetTarget(domain.Tree{"v": domain.Number(10)})
	tr.SetTarget(domain.Tree{"v": domain.Number(1)})

	cur, err := tr.Advance(0.5)
	require.NoError(t, err)

	v, _ := cur.NumberAt("v")
	assert.Equal(t, 0.5, v)
}

func TestSetTargetCopiesInput(t *testing.T) {
	tr := NewTransition(domain.Tree{"v": domain.Number(0)})
	target := domain.Tree{"v": domain.Number(1)}
	tr.SetTarget(target)

	// caller mutations after the swap must not leak in
	target["v"] = domain.Number(100)

	v, _ := tr.Target().NumberAt("v")
	assert.Equal(t, 1.0, v)
}

func TestMergeTargetKeepsUnrelatedChannels(t *testing.T) {
	tr := NewTransition(domain.Tree{
		"mouth": domain.Tree{"curve": domain.Number(0), "width": domain.Number(0.5)},
	})
	tr.MergeTarget(domain.Tree{"mouth": domain.Tree{"width": domain.Number(0.9)}})

	target := tr.Target()
	width, _ := target.NumberAt("mouth.width")
	assert.Equal(t, 0.9, width)
	curve, _ := target.NumberAt("mouth.curve")
	assert.Equal(t, 0.0, curve)
}

func TestAdvanceReportsShapeMismatchButContinues(t *testing.T) {
	tr := NewTransition(domain.Tree{"bad": domain.Number(1), "good": domain.Number(0)})
	tr.SetTarget(domain.Tree{"bad": domain.Text("x"), "good": domain.Number(1)})

	cur, err := tr.Advance(0.5)

	var shape *domain.ShapeError
	require.ErrorAs(t, err, &shape)

	good, _ := cur.NumberAt("good")
	assert.Equal(t, 0.5, good)
	bad, _ := cur.NumberAt("bad")
	assert.Equal(t, 1.0, bad)
}
