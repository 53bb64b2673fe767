// Package mcp exposes the engine as an MCP server, so agent hosts can
// drive the face with tool calls instead of raw HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
)

// Engine is the control surface the MCP tools need. *visage.Engine
// satisfies it.
type Engine interface {
	SetExpression(id string) error
	SetParams(partial domain.Tree, hold time.Duration) error
	Snapshot() domain.Snapshot
	CurrentExpression() string
}

// ExpressionResponse is the structured result of the control tools.
type ExpressionResponse struct {
	Expression string `json:"expression" jsonschema_description:"The active expression id"`
	Applied    bool   `json:"applied" jsonschema_description:"Whether the request changed the engine state"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	presets   ports.PresetSource
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, presets ports.PresetSource, version string) *Server {
	s := &Server{
		engine:    engine,
		presets:   presets,
		mcpServer: server.NewMCPServer("visage-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: set_expression
	setExpression := mcp.NewTool("set_expression",
		mcp.WithDescription("Switch the face to a named expression preset. The transition is smooth; the face eases toward the new expression over a few hundred milliseconds."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Expression preset id, e.g. happy, sad, neutral")),
		mcp.WithOutputSchema[ExpressionResponse](),
	)
	s.mcpServer.AddTool(setExpression, mcp.NewStructuredToolHandler(s.handleSetExpression))

	// TOOL: set_params
	setParams := mcp.NewTool("set_params",
		mcp.WithDescription("Nudge individual face channels without switching preset. Optionally hold the manual state against the remote feed."),
		mcp.WithString("params", mcp.Required(), mcp.Description("JSON object of channel paths, e.g. {\"mouth\":{\"curve\":5}}")),
		mcp.WithNumber("hold_ms", mcp.Description("Suppress remote expression changes for this many milliseconds")),
		mcp.WithOutputSchema[ExpressionResponse](),
	)
	s.mcpServer.AddTool(setParams, mcp.NewStructuredToolHandler(s.handleSetParams))

	// TOOL: get_snapshot
	s.mcpServer.AddTool(mcp.NewTool("get_snapshot",
		mcp.WithDescription("Get the most recent composited frame: expression id, color and the full parameter tree."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Snapshot())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: list_presets
	s.mcpServer.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the available expression presets."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type entry struct {
			ID    string `json:"id"`
			Label string `json:"label,omitempty"`
			Color string `json:"color,omitempty"`
		}
		list := s.presets.List()
		out := make([]entry, 0, len(list))
		for _, p := range list {
			out = append(out, entry{ID: p.ID, Label: p.Label, Color: p.Color})
		}
		jsonBytes, _ := json.Marshal(out)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleSetExpression(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpressionResponse, error) {
	id, _ := args["id"].(string)
	if err := s.engine.SetExpression(id); err != nil {
		return ExpressionResponse{}, fmt.Errorf("set expression: %w", err)
	}
	return ExpressionResponse{Expression: s.engine.CurrentExpression(), Applied: true}, nil
}

func (s *Server) handleSetParams(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpressionResponse, error) {
	paramsStr, _ := args["params"].(string)

	var raw map[string]any
	if err := json.Unmarshal([]byte(paramsStr), &raw); err != nil {
		return ExpressionResponse{}, fmt.Errorf("params must be a JSON object: %w", err)
	}
	tree, err := domain.FromMap(raw)
	if err != nil {
		return ExpressionResponse{}, fmt.Errorf("params rejected: %w", err)
	}
	if len(tree) == 0 {
		return ExpressionResponse{}, fmt.Errorf("params must not be empty")
	}

	var hold time.Duration
	if ms, ok := args["hold_ms"].(float64); ok && ms > 0 {
		hold = time.Duration(ms) * time.Millisecond
	}

	if err := s.engine.SetParams(tree, hold); err != nil {
		return ExpressionResponse{}, fmt.Errorf("set params: %w", err)
	}
	return ExpressionResponse{Expression: s.engine.CurrentExpression(), Applied: true}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: visage://snapshot
	s.mcpServer.AddResource(mcp.NewResource("visage://snapshot", "Current Face Snapshot",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "visage://snapshot",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
