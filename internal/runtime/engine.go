package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/mengchil/visage/internal/logging"
	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
)

// Engine is the core synthesis loop state: one process-wide animation
// state advanced frame by frame. Control surfaces and the remote channel
// mutate the target side; Tick advances the current side and composites.
type Engine struct {
	source     ports.PresetSource
	transition *Transition
	synth      *Synthesizer
	liveness   *Liveness
	compositor *Compositor
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	clock      Clock
	alpha      float64

	mu           sync.Mutex
	epoch        time.Time
	currentExpr  string
	activeMotion domain.MotionRules
	color        string
	holdUntil    time.Time
	seq          uint64
	last         domain.Snapshot
	closed       bool
}

// EngineOption configures the runtime engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	alpha       float64
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	clock       Clock
	rnd         *rand.Rand
	liveness    LivenessConfig
	initialExpr string
}

// WithAlpha sets the per-frame interpolation factor (default 0.1).
func WithAlpha(alpha float64) EngineOption {
	return func(c *engineConfig) {
		if alpha > 0 && alpha <= 1 {
			c.alpha = alpha
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(c *engineConfig) { c.hooks = hooks }
}

// WithClock injects a time source for tests.
func WithClock(clock Clock) EngineOption {
	return func(c *engineConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRand injects a deterministic randomness source for tests.
func WithRand(rnd *rand.Rand) EngineOption {
	return func(c *engineConfig) { c.rnd = rnd }
}

// WithLivenessConfig overrides the blink/jitter schedule timings.
func WithLivenessConfig(cfg LivenessConfig) EngineOption {
	return func(c *engineConfig) { c.liveness = cfg }
}

// WithInitialExpression overrides the starting preset (default "neutral").
func WithInitialExpression(id string) EngineOption {
	return func(c *engineConfig) {
		if id != "" {
			c.initialExpr = id
		}
	}
}

// NewEngine creates and starts the runtime: state is seeded from the
// initial preset's base, the motion phase reference is pinned to now, and
// the liveness schedules begin immediately.
func NewEngine(source ports.PresetSource, opts ...EngineOption) (*Engine, error) {
	cfg := engineConfig{
		alpha:       domain.DefaultAlpha,
		logger:      logging.NewNop(),
		clock:       SystemClock,
		initialExpr: domain.NeutralExpression,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	initial, err := source.Lookup(cfg.initialExpr)
	if err != nil {
		return nil, fmt.Errorf("initial expression %q: %w", cfg.initialExpr, err)
	}

	e := &Engine{
		source:     source,
		transition: NewTransition(initial.Base),
		synth:      NewSynthesizer(cfg.rnd),
		compositor: NewCompositor(cfg.logger),
		logger:     cfg.logger,
		hooks:      cfg.hooks,
		clock:      cfg.clock,
		alpha:      cfg.alpha,

		epoch:        cfg.clock.Now(),
		currentExpr:  initial.ID,
		activeMotion: initial.Motion,
		color:        initial.Color,
	}
	e.liveness = NewLiveness(cfg.liveness, cfg.rnd, e.emitBlink)
	e.liveness.Start()
	return e, nil
}

func (e *Engine) emitBlink(at time.Time) {
	if e.hooks.OnBlink != nil {
		e.hooks.OnBlink(context.Background(), &domain.BlinkEvent{At: at})
	}
}

// SetExpression switches the transition target to the named preset.
// Unknown ids leave the state unchanged: a warning is logged and
// domain.ErrPresetNotFound returned. The preset color is latched
// immediately; the base tree keeps interpolating.
func (e *Engine) SetExpression(id string) error {
	return e.setExpression(id, domain.SourceManual)
}

// ApplyRemote applies a remote-authority expression change. It reports
// whether the change was applied; a manual hold window suppresses it.
func (e *Engine) ApplyRemote(id string) (bool, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false, domain.ErrEngineClosed
	}
	if e.clock.Now().Before(e.holdUntil) {
		e.mu.Unlock()
		e.logger.Debug("remote expression suppressed by manual hold", "expression", id)
		return false, nil
	}
	e.mu.Unlock()

	if err := e.setExpression(id, domain.SourceRemote); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) setExpression(id, source string) error {
	preset, err := e.source.Lookup(id)
	if err != nil {
		e.logger.Warn("unknown expression requested", "expression", id, "source", source)
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.ErrEngineClosed
	}
	prev := e.currentExpr
	e.currentExpr = preset.ID
	e.activeMotion = preset.Motion
	// color is latched now, independent of the still-blending base
	e.color = preset.Color
	e.mu.Unlock()

	e.transition.SetTarget(preset.Base)

	e.logger.Info("expression change", "from", prev, "to", preset.ID, "source", source)
	if e.hooks.OnExpressionChange != nil {
		e.hooks.OnExpressionChange(context.Background(), &domain.ExpressionEvent{
			At:           e.clock.Now(),
			PreviousID:   prev,
			ExpressionID: preset.ID,
			Source:       source,
		})
	}
	return nil
}

// SetParams merges a partial tree into the target base, bypassing preset
// lookup. A positive hold suppresses remote-driven expression changes
// until the deadline, protecting manual tuning from the authority feed.
func (e *Engine) SetParams(partial domain.Tree, hold time.Duration) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.ErrEngineClosed
	}
	if hold > 0 {
		e.holdUntil = e.clock.Now().Add(hold)
	}
	e.mu.Unlock()

	e.transition.MergeTarget(partial)
	return nil
}

// Held reports whether a manual hold window is active.
func (e *Engine) Held() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Now().Before(e.holdUntil)
}

// CurrentExpression returns the active expression id.
func (e *Engine) CurrentExpression() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentExpr
}

// Target exposes the current target tree (manual tuning UIs read it back).
func (e *Engine) Target() domain.Tree {
	return e.transition.Target()
}

// Tick advances one frame: interpolate, synthesize motion, sample
// liveness, composite. It never blocks; after Close it returns the last
// snapshot unchanged.
func (e *Engine) Tick(ctx context.Context) domain.Snapshot {
	start := e.clock.Now()

	e.mu.Lock()
	if e.closed {
		last := e.last.Clone()
		e.mu.Unlock()
		return last
	}
	exprID := e.currentExpr
	motionRules := e.activeMotion
	color := e.color
	elapsed := start.Sub(e.epoch)
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	base, err := e.transition.Advance(e.alpha)
	if err != nil {
		e.logger.Warn("interpolation partially skipped", "err", err)
	}
	motion := e.synth.Evaluate(motionRules, elapsed)
	live := e.liveness.Sample()

	snap := e.compositor.Compose(base, motion, live, exprID, color, seq, start)

	e.mu.Lock()
	e.last = snap
	e.mu.Unlock()

	if e.hooks.OnFrame != nil {
		e.hooks.OnFrame(ctx, &domain.FrameEvent{
			Seq:          seq,
			At:           start,
			ExpressionID: exprID,
			Duration:     e.clock.Now().Sub(start),
		})
	}
	return snap
}

// Snapshot returns a copy of the most recent composited frame.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last.Clone()
}

// Close cancels the liveness schedules and makes the engine inert.
// Idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.liveness.Close()
	e.logger.Info("engine closed")
	return nil
}
