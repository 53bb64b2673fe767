package runtime

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fastLiveness(onBlink func(time.Time)) *Liveness {
	return NewLiveness(LivenessConfig{
		FirstBlinkDelay: 10 * time.Millisecond,
		BlinkHold:       20 * time.Millisecond,
		BlinkMinDelay:   40 * time.Millisecond,
		BlinkMaxDelay:   50 * time.Millisecond,
		JitterInterval:  5 * time.Millisecond,
	}, rand.New(rand.NewSource(1)), onBlink)
}

func TestBlinkCycleClosesAndReopens(t *testing.T) {
	var blinks atomic.Int64
	l := fastLiveness(func(time.Time) { blinks.Add(1) })
	l.Start()
	defer l.Close()

	assert.Equal(t, 1.0, l.Sample().BlinkScale, "eyes start open")

	require.Eventually(t, func() bool {
		return l.Sample().BlinkScale == 0
	}, time.Second, time.Millisecond, "first blink")

	require.Eventually(t, func() bool {
		return l.Sample().BlinkScale == 1
	}, time.Second, time.Millisecond, "reopen after hold")

	require.Eventually(t, func() bool {
		return blinks.Load() >= 2
	}, 2*time.Second, time.Millisecond, "blink loop keeps going")
}

func TestBlinkScaleAlwaysInUnitRange(t *testing.T) {
	l := fastLiveness(nil)
	l.Start()
	defer l.Close()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		s := l.Sample()
		require.True(t, s.BlinkScale == 0 || s.BlinkScale == 1)
		time.Sleep(time.Millisecond)
	}
}

func TestJitterStaysBoundedAndMoves(t *testing.T) {
	l := fastLiveness(nil)
	l.Start()
	defer l.Close()

	moved := false
	var prev LivenessSample
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		s := l.Sample()
		require.LessOrEqual(t, math.Abs(s.JitterX), 1.0)
		require.LessOrEqual(t, math.Abs(s.JitterY), 1.0)
		if s.JitterX != prev.JitterX || s.JitterY != prev.JitterY {
			moved = true
		}
		prev = s
		time.Sleep(time.Millisecond)
	}
	assert.True(t, moved, "jitter should be redrawn on its tick")
}

func TestCloseCancelsSchedules(t *testing.T) {
	var blinks atomic.Int64
	l := fastLiveness(func(time.Time) { blinks.Add(1) })
	l.Start()

	require.Eventually(t, func() bool { return blinks.Load() >= 1 }, time.Second, time.Millisecond)
	l.Close()
	count := blinks.Load()
	frozen := l.Sample()

	// callbacks scheduled before Close must detect the closed state
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, count, blinks.Load())
	assert.Equal(t, frozen, l.Sample())
}

func TestCloseIsIdempotent(t *testing.T) {
	l := fastLiveness(nil)
	l.Start()
	l.Close()
	l.Close()
}

func TestStartAfterCloseIsNoop(t *testing.T) {
	l := fastLiveness(nil)
	l.Close()
	l.Start()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1.0, l.Sample().BlinkScale)
}
