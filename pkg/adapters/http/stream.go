package http

import (
	"log/slog"
	"sync"

	"github.com/mengchil/visage/pkg/domain"
)

// StreamManager fans composited frames out to websocket subscribers.
// Slow clients drop frames rather than stall the loop.
type StreamManager struct {
	mu     sync.Mutex
	subs   map[chan domain.Snapshot]struct{}
	logger *slog.Logger
	closed bool
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subs:   make(map[chan domain.Snapshot]struct{}),
		logger: logger,
	}
}

// Subscribe registers a client. The returned cancel must be called when
// the client disconnects.
func (sm *StreamManager) Subscribe() (<-chan domain.Snapshot, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan domain.Snapshot, 8)
	if sm.closed {
		close(ch)
		return ch, func() {}
	}
	sm.subs[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subs[ch]; ok {
			delete(sm.subs, ch)
			close(ch)
		}
	}
}

// Broadcast delivers the frame to every subscriber, skipping full
// buffers.
func (sm *StreamManager) Broadcast(snap domain.Snapshot) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for ch := range sm.subs {
		select {
		case ch <- snap:
		default:
			// slow client, frame dropped
		}
	}
}

// CloseAll disconnects every subscriber and refuses new ones.
func (sm *StreamManager) CloseAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.closed {
		return
	}
	sm.closed = true
	for ch := range sm.subs {
		delete(sm.subs, ch)
		close(ch)
	}
}
