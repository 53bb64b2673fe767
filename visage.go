package visage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mengchil/visage/internal/logging"
	"github.com/mengchil/visage/internal/runtime"
	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
	"github.com/mengchil/visage/pkg/presets"
)

// Engine is the high-level entry point. It wraps the internal runtime
// and adds preset sourcing and state persistence.
type Engine struct {
	runtime *runtime.Engine
	source  ports.PresetSource
	store   ports.StateStore
	logger  *slog.Logger

	stateKey    string
	initialExpr string
	hooks       domain.LifecycleHooks
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithPresets injects the preset source (default: built-in catalog).
func WithPresets(source ports.PresetSource) Option {
	return func(e *Engine) {
		if source != nil {
			e.source = source
		}
	}
}

// WithStateStore enables last-expression persistence: the active
// expression is saved on every change and restored at startup.
func WithStateStore(store ports.StateStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithStateKey names the persisted state (default "face"). Only
// meaningful together with WithStateStore.
func WithStateKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.stateKey = key
		}
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithAlpha sets the per-frame interpolation factor (default 0.1).
func WithAlpha(alpha float64) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithAlpha(alpha))
	}
}

// WithInitialExpression sets the starting preset (default "neutral").
// A restored expression from the state store takes precedence.
func WithInitialExpression(id string) Option {
	return func(e *Engine) { e.initialExpr = id }
}

// New initializes the engine and starts its liveness schedules.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:      logging.NewNop(),
		stateKey:    "face",
		initialExpr: domain.NeutralExpression,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.source == nil {
		reg, err := presets.Registry()
		if err != nil {
			return nil, err
		}
		e.source = reg
	}

	initial := e.initialExpr
	if e.store != nil {
		if rec, err := e.store.Load(context.Background(), e.stateKey); err == nil {
			if _, lookupErr := e.source.Lookup(rec.ExpressionID); lookupErr == nil {
				initial = rec.ExpressionID
				e.logger.Info("restored expression", "expression", initial, "saved_at", rec.AppliedAt)
			} else {
				e.logger.Warn("saved expression missing from catalog", "expression", rec.ExpressionID)
			}
		} else if !errors.Is(err, domain.ErrNoSavedState) {
			e.logger.Warn("state restore failed", "err", err)
		}
	}

	hooks := e.hooks
	if e.store != nil {
		hooks = e.withPersistence(hooks)
	}

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithInitialExpression(initial),
	}
	runtimeOpts = append(runtimeOpts, e.runtimeOpts...)

	rt, err := runtime.NewEngine(e.source, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	e.runtime = rt
	return e, nil
}

// withPersistence saves the active expression on every change, on top
// of whatever hooks the host registered.
func (e *Engine) withPersistence(base domain.LifecycleHooks) domain.LifecycleHooks {
	out := base
	userHook := base.OnExpressionChange
	out.OnExpressionChange = func(ctx context.Context, ev *domain.ExpressionEvent) {
		rec := &domain.ExpressionRecord{
			ExpressionID: ev.ExpressionID,
			Source:       ev.Source,
			AppliedAt:    ev.At,
		}
		if err := e.store.Save(ctx, e.stateKey, rec); err != nil {
			e.logger.Warn("state save failed", "expression", ev.ExpressionID, "err", err)
		}
		if userHook != nil {
			userHook(ctx, ev)
		}
	}
	return out
}

// SetExpression switches the face to the named preset.
func (e *Engine) SetExpression(id string) error {
	return e.runtime.SetExpression(id)
}

// ApplyRemote applies a remote-authority expression change, honoring
// any manual hold window. It reports whether the change was applied.
func (e *Engine) ApplyRemote(id string) (bool, error) {
	return e.runtime.ApplyRemote(id)
}

// SetParams merges a partial parameter tree into the transition target.
// A positive hold suppresses remote expression changes for that long.
func (e *Engine) SetParams(partial domain.Tree, hold time.Duration) error {
	return e.runtime.SetParams(partial, hold)
}

// Tick advances one frame and returns the composited snapshot.
func (e *Engine) Tick(ctx context.Context) domain.Snapshot {
	return e.runtime.Tick(ctx)
}

// Snapshot returns the most recent composited frame without advancing.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.runtime.Snapshot()
}

// CurrentExpression returns the active expression id.
func (e *Engine) CurrentExpression() string {
	return e.runtime.CurrentExpression()
}

// Target returns the current transition target tree.
func (e *Engine) Target() domain.Tree {
	return e.runtime.Target()
}

// Held reports whether a manual hold window is suppressing the remote
// channel.
func (e *Engine) Held() bool {
	return e.runtime.Held()
}

// Presets exposes the engine's preset source.
func (e *Engine) Presets() ports.PresetSource {
	return e.source
}

// Close stops the liveness schedules and makes the engine inert.
func (e *Engine) Close() error {
	return e.runtime.Close()
}
