package runtime

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mengchil/visage/pkg/domain"
)

// LivenessConfig controls the autonomous blink and jitter schedules.
// Zero fields take the default timings from pkg/domain/constants.go;
// tests shrink them to milliseconds.
type LivenessConfig struct {
	FirstBlinkDelay time.Duration
	BlinkHold       time.Duration
	BlinkMinDelay   time.Duration
	BlinkMaxDelay   time.Duration
	JitterInterval  time.Duration
}

func (c LivenessConfig) withDefaults() LivenessConfig {
	if c.FirstBlinkDelay <= 0 {
		c.FirstBlinkDelay = domain.DefaultFirstBlinkDelay
	}
	if c.BlinkHold <= 0 {
		c.BlinkHold = domain.DefaultBlinkHold
	}
	if c.BlinkMinDelay <= 0 {
		c.BlinkMinDelay = domain.DefaultBlinkMinDelay
	}
	if c.BlinkMaxDelay < c.BlinkMinDelay {
		c.BlinkMaxDelay = domain.DefaultBlinkMaxDelay
	}
	if c.JitterInterval <= 0 {
		c.JitterInterval = domain.DefaultJitterInterval
	}
	return c
}

// LivenessSample is the liveness state read by the compositor each frame.
type LivenessSample struct {
	BlinkScale float64
	JitterX    float64
	JitterY    float64
}

// Liveness runs the two idle schedules, independent of any preset:
// a blink loop (close, hold, reopen, wait a random delay) and a fixed-rate
// micro-jitter redraw. Both persist across expression switches and are
// cancelled deterministically by Close; callbacks firing after Close
// detect the closed state and return without touching anything.
type Liveness struct {
	mu  sync.Mutex
	cfg LivenessConfig
	rnd *rand.Rand

	blinkScale float64
	jitterX    float64
	jitterY    float64

	restoreTimer *time.Timer
	nextTimer    *time.Timer
	done         chan struct{}
	closed       bool
	started      bool

	onBlink func(time.Time)
}

// NewLiveness creates the layer with eyes open and no jitter. onBlink may
// be nil.
func NewLiveness(cfg LivenessConfig, rnd *rand.Rand, onBlink func(time.Time)) *Liveness {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Liveness{
		cfg:        cfg.withDefaults(),
		rnd:        rnd,
		blinkScale: 1,
		done:       make(chan struct{}),
		onBlink:    onBlink,
	}
}

// Start schedules the first blink and launches the jitter ticker.
func (l *Liveness) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.closed {
		return
	}
	l.started = true
	l.nextTimer = time.AfterFunc(l.cfg.FirstBlinkDelay, l.blink)
	go l.jitterLoop()
}

// Sample returns the current liveness state.
func (l *Liveness) Sample() LivenessSample {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LivenessSample{
		BlinkScale: l.blinkScale,
		JitterX:    l.jitterX,
		JitterY:    l.jitterY,
	}
}

// Close cancels both schedules. Idempotent; safe to call concurrently with
// firing callbacks.
func (l *Liveness) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.restoreTimer != nil {
		l.restoreTimer.Stop()
	}
	if l.nextTimer != nil {
		l.nextTimer.Stop()
	}
	close(l.done)
}

func (l *Liveness) blink() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.blinkScale = 0
	l.restoreTimer = time.AfterFunc(l.cfg.BlinkHold, l.reopen)
	l.nextTimer = time.AfterFunc(l.nextBlinkDelay(), l.blink)
	hook := l.onBlink
	l.mu.Unlock()

	if hook != nil {
		hook(time.Now())
	}
}

func (l *Liveness) reopen() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.blinkScale = 1
}

// nextBlinkDelay draws uniformly from [BlinkMinDelay, BlinkMaxDelay].
// Caller holds l.mu.
func (l *Liveness) nextBlinkDelay() time.Duration {
	span := l.cfg.BlinkMaxDelay - l.cfg.BlinkMinDelay
	if span <= 0 {
		return l.cfg.BlinkMinDelay
	}
	return l.cfg.BlinkMinDelay + time.Duration(l.rnd.Int63n(int64(span)))
}

func (l *Liveness) jitterLoop() {
	ticker := time.NewTicker(l.cfg.JitterInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			if l.closed {
				l.mu.Unlock()
				return
			}
			l.jitterX = l.rnd.Float64()*2 - 1
			l.jitterY = l.rnd.Float64()*2 - 1
			l.mu.Unlock()
		}
	}
}
