package domain

import (
	"context"
	"time"
)

// FrameEvent is emitted after every composited frame.
type FrameEvent struct {
	Seq          uint64        `json:"seq"`
	At           time.Time     `json:"at"`
	ExpressionID string        `json:"expression_id"`
	Duration     time.Duration `json:"duration"`
}

// ExpressionEvent is emitted when the active expression changes.
type ExpressionEvent struct {
	At           time.Time `json:"at"`
	PreviousID   string    `json:"previous_id"`
	ExpressionID string    `json:"expression_id"`
	Source       string    `json:"source"`
}

// BlinkEvent is emitted at the start of every autonomous blink.
type BlinkEvent struct {
	At time.Time `json:"at"`
}

// RemoteEvent describes remote channel lifecycle changes.
type RemoteEvent struct {
	At  time.Time `json:"at"`
	URL string    `json:"url"`
	Err error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability. All hooks are
// optional and must not block; they run on the emitting goroutine.
type LifecycleHooks struct {
	OnFrame            func(context.Context, *FrameEvent)
	OnExpressionChange func(context.Context, *ExpressionEvent)
	OnBlink            func(context.Context, *BlinkEvent)
	OnRemoteConnect    func(context.Context, *RemoteEvent)
	OnRemoteDrop       func(context.Context, *RemoteEvent)
}
