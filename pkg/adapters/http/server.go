// Package http exposes the engine over a small REST surface plus a
// websocket snapshot feed, for renderer frontends and debugging.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
)

// Engine is the control surface the HTTP layer needs. *visage.Engine
// satisfies it.
type Engine interface {
	SetExpression(id string) error
	SetParams(partial domain.Tree, hold time.Duration) error
	Snapshot() domain.Snapshot
	CurrentExpression() string
}

// Server wires the engine and preset source into an HTTP handler. It
// also implements ports.SnapshotPublisher: frames published here fan
// out to every connected /stream client.
type Server struct {
	engine  Engine
	presets ports.PresetSource
	logger  *slog.Logger
	streams *StreamManager
}

// NewServer creates the HTTP server surface.
func NewServer(engine Engine, presets ports.PresetSource, logger *slog.Logger) *Server {
	return &Server{
		engine:  engine,
		presets: presets,
		logger:  logger,
		streams: NewStreamManager(logger),
	}
}

// Handler returns the routed handler with CORS enabled.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/snapshot", s.getSnapshot)
	r.Get("/presets", s.getPresets)
	r.Post("/expression", s.postExpression)
	r.Post("/params", s.postParams)
	r.Get("/stream", s.getStream)

	return enableCORS(r)
}

// Publish broadcasts a composited frame to the stream clients.
func (s *Server) Publish(ctx context.Context, snap domain.Snapshot) error {
	s.streams.Broadcast(snap)
	return nil
}

// Close drops every stream client.
func (s *Server) Close() error {
	s.streams.CloseAll()
	return nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, s.engine.Snapshot())
}

// presetInfo is the catalog entry shape exposed over the wire; base
// trees and motion rules stay internal.
type presetInfo struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
}

func (s *Server) getPresets(w http.ResponseWriter, r *http.Request) {
	list := s.presets.List()
	out := make([]presetInfo, 0, len(list))
	for _, p := range list {
		out = append(out, presetInfo{ID: p.ID, Label: p.Label, Color: p.Color})
	}
	writeJSON(w, s.logger, out)
}

type expressionRequest struct {
	ID string `json:"id"`
}

func (s *Server) postExpression(w http.ResponseWriter, r *http.Request) {
	var body expressionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("expression: invalid request body", "err", err)
		return
	}

	if err := s.engine.SetExpression(body.ID); err != nil {
		if errors.Is(err, domain.ErrPresetNotFound) {
			http.Error(w, fmt.Sprintf("unknown expression %q", body.ID), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("expression change failed", "err", err)
		return
	}

	writeJSON(w, s.logger, map[string]string{"expression": s.engine.CurrentExpression()})
}

type paramsRequest struct {
	Params domain.Tree `json:"params"`
	HoldMS int64       `json:"hold_ms"`
}

func (s *Server) postParams(w http.ResponseWriter, r *http.Request) {
	var body paramsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("params: invalid request body", "err", err)
		return
	}
	if len(body.Params) == 0 {
		http.Error(w, "params must not be empty", http.StatusBadRequest)
		return
	}

	hold := time.Duration(body.HoldMS) * time.Millisecond
	if err := s.engine.SetParams(body.Params, hold); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("param merge failed", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getStream(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(ws *websocket.Conn) {
		ch, cancel := s.streams.Subscribe()
		defer cancel()

		// seed the client so it can draw before the next frame lands
		if err := websocket.JSON.Send(ws, s.engine.Snapshot()); err != nil {
			return
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case snap, ok := <-ch:
				if !ok {
					return
				}
				if err := websocket.JSON.Send(ws, snap); err != nil {
					s.logger.Debug("stream client dropped", "err", err)
					return
				}
			}
		}
	}).ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
