package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mengchil/visage/pkg/domain"
)

// Metrics is the engine metrics bundle. Wire it with WithLifecycleHooks
// and expose Handler on the control server.
type Metrics struct {
	registry *prometheus.Registry

	frames            prometheus.Counter
	frameDuration     prometheus.Histogram
	expressionChanges *prometheus.CounterVec
	blinks            prometheus.Counter
	remoteConnects    prometheus.Counter
	remoteDrops       prometheus.Counter
}

// NewMetrics creates the bundle on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		frames: factory.NewCounter(prometheus.CounterOpts{
			Name: "visage_frames_total",
			Help: "Composited frames.",
		}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "visage_frame_duration_seconds",
			Help: "Time spent compositing one frame.",
			// 60fps budget is ~16ms; buckets resolve well under that
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .016, .05},
		}),
		expressionChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visage_expression_changes_total",
			Help: "Expression changes by source.",
		}, []string{"source"}),
		blinks: factory.NewCounter(prometheus.CounterOpts{
			Name: "visage_blinks_total",
			Help: "Autonomous blinks.",
		}),
		remoteConnects: factory.NewCounter(prometheus.CounterOpts{
			Name: "visage_remote_connects_total",
			Help: "Successful remote channel connections.",
		}),
		remoteDrops: factory.NewCounter(prometheus.CounterOpts{
			Name: "visage_remote_drops_total",
			Help: "Remote channel disconnects.",
		}),
	}
}

// Hooks returns the lifecycle hooks feeding this bundle.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFrame: func(ctx context.Context, ev *domain.FrameEvent) {
			m.frames.Inc()
			m.frameDuration.Observe(ev.Duration.Seconds())
		},
		OnExpressionChange: func(ctx context.Context, ev *domain.ExpressionEvent) {
			m.expressionChanges.WithLabelValues(ev.Source).Inc()
		},
		OnBlink: func(ctx context.Context, ev *domain.BlinkEvent) {
			m.blinks.Inc()
		},
		OnRemoteConnect: func(ctx context.Context, ev *domain.RemoteEvent) {
			m.remoteConnects.Inc()
		},
		OnRemoteDrop: func(ctx context.Context, ev *domain.RemoteEvent) {
			m.remoteDrops.Inc()
		},
	}
}

// Handler serves the metrics in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for hosts that register
// their own collectors alongside.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Compose stacks hook sets: every non-nil callback runs, in order.
func Compose(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	out.OnFrame = func(ctx context.Context, ev *domain.FrameEvent) {
		for _, h := range hooks {
			if h.OnFrame != nil {
				h.OnFrame(ctx, ev)
			}
		}
	}
	out.OnExpressionChange = func(ctx context.Context, ev *domain.ExpressionEvent) {
		for _, h := range hooks {
			if h.OnExpressionChange != nil {
				h.OnExpressionChange(ctx, ev)
			}
		}
	}
	out.OnBlink = func(ctx context.Context, ev *domain.BlinkEvent) {
		for _, h := range hooks {
			if h.OnBlink != nil {
				h.OnBlink(ctx, ev)
			}
		}
	}
	out.OnRemoteConnect = func(ctx context.Context, ev *domain.RemoteEvent) {
		for _, h := range hooks {
			if h.OnRemoteConnect != nil {
				h.OnRemoteConnect(ctx, ev)
			}
		}
	}
	out.OnRemoteDrop = func(ctx context.Context, ev *domain.RemoteEvent) {
		for _, h := range hooks {
			if h.OnRemoteDrop != nil {
				h.OnRemoteDrop(ctx, ev)
			}
		}
	}
	return out
}
