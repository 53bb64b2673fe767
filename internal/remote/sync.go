// Package remote maintains the websocket link to the expression
// authority: an upstream agent that tells the face what to feel.
package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/mengchil/visage/pkg/domain"
)

// Applier receives remote-authority expression changes. *visage.Engine
// satisfies it.
type Applier interface {
	ApplyRemote(id string) (bool, error)
}

// DefaultStateMap translates coarse agent states into expressions when
// a message carries no explicit preset id.
var DefaultStateMap = map[string]string{
	"PLANNING":   "focused",
	"EXECUTING":  "focused",
	"IDLE":       domain.NeutralExpression,
	"RECOVERING": "sad",
	"SUCCESS":    "happy",
}

// Config holds the remote channel settings.
type Config struct {
	// URL is the websocket endpoint, e.g. ws://agent.local:9001/face.
	URL string

	// Origin is sent in the websocket handshake. Defaults to the URL
	// with an http scheme.
	Origin string

	// ReconnectDelay is the fixed wait between connection attempts
	// (default 3s). The channel retries forever; there is no backoff
	// and no give-up.
	ReconnectDelay time.Duration

	// StateMap overrides DefaultStateMap.
	StateMap map[string]string
}

func (c Config) withDefaults() Config {
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = domain.DefaultReconnectDelay
	}
	if c.Origin == "" {
		c.Origin = "http://localhost/"
	}
	if c.StateMap == nil {
		c.StateMap = DefaultStateMap
	}
	return c
}

// message is the authority's wire format. Either field may be absent;
// an explicit preset id wins over the coarse agent state.
type message struct {
	Emotion *struct {
		PresetID string `json:"preset_id"`
	} `json:"emotion"`
	AgentState string `json:"agent_state"`
}

// Sync owns the connection lifecycle: dial, read, reapply, reconnect.
type Sync struct {
	cfg     Config
	applier Applier
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	mu       sync.Mutex
	conn     *websocket.Conn
	lastSeen string
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates the sync client. Start begins connecting.
func New(cfg Config, applier Applier, logger *slog.Logger, hooks domain.LifecycleHooks) *Sync {
	return &Sync{
		cfg:     cfg.withDefaults(),
		applier: applier,
		logger:  logger,
		hooks:   hooks,
		done:    make(chan struct{}),
	}
}

// Start launches the connection loop. It returns immediately; the face
// keeps animating whether or not the authority is reachable.
func (s *Sync) Start() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
}

// Close tears the connection down and stops reconnecting. Idempotent.
func (s *Sync) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	close(s.done)
	if conn != nil {
		conn.Close()
	}
	s.wg.Wait()
	return nil
}

func (s *Sync) run() {
	defer s.wg.Done()

	for {
		conn, err := websocket.Dial(s.cfg.URL, "", s.cfg.Origin)
		if err != nil {
			s.logger.Warn("remote dial failed", "url", s.cfg.URL, "err", err)
			if !s.sleep() {
				return
			}
			continue
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conn = conn
		s.mu.Unlock()

		s.logger.Info("remote connected", "url", s.cfg.URL)
		if s.hooks.OnRemoteConnect != nil {
			s.hooks.OnRemoteConnect(context.Background(), &domain.RemoteEvent{At: time.Now(), URL: s.cfg.URL})
		}

		err = s.readLoop(conn)

		s.mu.Lock()
		s.conn = nil
		closed := s.closed
		s.mu.Unlock()
		conn.Close()

		if closed {
			return
		}

		s.logger.Warn("remote connection lost", "url", s.cfg.URL, "err", err)
		if s.hooks.OnRemoteDrop != nil {
			s.hooks.OnRemoteDrop(context.Background(), &domain.RemoteEvent{At: time.Now(), URL: s.cfg.URL, Err: err})
		}
		if !s.sleep() {
			return
		}
	}
}

func (s *Sync) readLoop(conn *websocket.Conn) error {
	for {
		var raw []byte
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			return err
		}
		// a frame that does not parse is dropped, never a disconnect:
		// the authority replays from the head on reconnect, so treating
		// it as one would starve the feed on a single bad message
		var msg message
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Debug("malformed remote payload dropped", "err", err)
			continue
		}
		s.handle(msg)
	}
}

func (s *Sync) handle(msg message) {
	id := ""
	if msg.Emotion != nil && msg.Emotion.PresetID != "" {
		id = msg.Emotion.PresetID
	} else if msg.AgentState != "" {
		mapped, ok := s.cfg.StateMap[msg.AgentState]
		if !ok {
			s.logger.Debug("unmapped agent state ignored", "state", msg.AgentState)
			return
		}
		id = mapped
	}
	if id == "" {
		return
	}

	s.mu.Lock()
	if id == s.lastSeen {
		s.mu.Unlock()
		return
	}
	// dedup keys on what the authority sent, not on what stuck: a held
	// or unknown id is still "seen" and will not be retried until the
	// authority sends something else
	s.lastSeen = id
	s.mu.Unlock()

	applied, err := s.applier.ApplyRemote(id)
	if err != nil {
		s.logger.Warn("remote expression rejected", "expression", id, "err", err)
		return
	}
	if !applied {
		s.logger.Debug("remote expression suppressed", "expression", id)
	}
}

// sleep waits the fixed reconnect delay, or reports false when closed.
func (s *Sync) sleep() bool {
	select {
	case <-s.done:
		return false
	case <-time.After(s.cfg.ReconnectDelay):
		return true
	}
}
