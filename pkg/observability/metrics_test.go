package observability

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mengchil/visage/pkg/domain"
)

func TestHooksFeedCounters(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnFrame(ctx, &domain.FrameEvent{Seq: 1, Duration: time.Millisecond})
	hooks.OnFrame(ctx, &domain.FrameEvent{Seq: 2, Duration: time.Millisecond})
	hooks.OnExpressionChange(ctx, &domain.ExpressionEvent{Source: domain.SourceRemote})
	hooks.OnExpressionChange(ctx, &domain.ExpressionEvent{Source: domain.SourceManual})
	hooks.OnBlink(ctx, &domain.BlinkEvent{})
	hooks.OnRemoteConnect(ctx, &domain.RemoteEvent{})
	hooks.OnRemoteDrop(ctx, &domain.RemoteEvent{})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.expressionChanges.WithLabelValues(domain.SourceRemote)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blinks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteConnects))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteDrops))
}

func TestHandlerServesMetrics(t *testing.T) {
	m := NewMetrics()
	m.Hooks().OnBlink(context.Background(), &domain.BlinkEvent{})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "visage_blinks_total 1")
}

func TestComposeRunsEveryHookSet(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnBlink: func(ctx context.Context, ev *domain.BlinkEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnBlink: func(ctx context.Context, ev *domain.BlinkEvent) { order = append(order, "b") },
	}

	combined := Compose(a, b)
	combined.OnBlink(context.Background(), &domain.BlinkEvent{})
	combined.OnFrame(context.Background(), &domain.FrameEvent{}) // neither set cares, must not panic

	assert.Equal(t, []string{"a", "b"}, order)
}
