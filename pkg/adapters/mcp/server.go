// Package mcp exposes status maps to MCP clients as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/internal/presentation/graph"
	"github.com/aretw0/statusmap/pkg/registry"
)

// Server wraps a map registry and exposes it as an MCP Server.
type Server struct {
	registry  *registry.Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("statusmap-mcp", strings.TrimSpace(statusmap.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

// ClassifyArgs are the arguments of classify_transition.
type ClassifyArgs struct {
	Map  string `json:"map"`
	From string `json:"from"`
	To   string `json:"to"`
}

// SequenceArgs are the arguments of validate_sequence.
type SequenceArgs struct {
	Map      string   `json:"map"`
	Statuses []string `json:"statuses"`
}

// StatusArgs are the arguments of describe_status.
type StatusArgs struct {
	Map    string `json:"map"`
	Status string `json:"status"`
}

// GraphArgs are the arguments of get_graph.
type GraphArgs struct {
	Map    string `json:"map"`
	Format string `json:"format"`
}

// VerdictResult is the structured output of classify_transition.
type VerdictResult struct {
	From    string `json:"from" jsonschema_description:"Current status"`
	To      string `json:"to" jsonschema_description:"Requested status"`
	Outcome string `json:"outcome" jsonschema_description:"Classification of the move"`
	Valid   bool   `json:"valid" jsonschema_description:"Whether the move is legal"`
	Reason  string `json:"reason,omitempty" jsonschema_description:"Why the move is not legal"`
}

// SequenceResult is the structured output of validate_sequence.
type SequenceResult struct {
	Valid  bool   `json:"valid" jsonschema_description:"Whether every step of the history is legal"`
	Index  int    `json:"index" jsonschema_description:"Position of the first illegal step, -1 when valid"`
	Reason string `json:"reason,omitempty" jsonschema_description:"Why the step is not legal"`
}

// StatusResult is the structured output of describe_status.
type StatusResult struct {
	Status   string   `json:"status"`
	Next     []string `json:"next" jsonschema_description:"Direct successors"`
	Previous []string `json:"previous" jsonschema_description:"Statuses that can lead here"`
	Upcoming []string `json:"upcoming" jsonschema_description:"Statuses reachable from here"`
	Terminal bool     `json:"terminal"`
}

// MapsResult is the structured output of list_maps.
type MapsResult struct {
	Maps []string `json:"maps"`
}

func (s *Server) registerTools() {
	mapArg := mcp.WithString("map", mcp.Required(), mcp.Description("Name of the status map"))

	s.mcpServer.AddTool(mcp.NewTool("classify_transition",
		mcp.WithDescription("Classify a move between two statuses: valid, past, future, ambiguous, not_related or not_found."),
		mapArg,
		mcp.WithString("from", mcp.Required(), mcp.Description("Current status")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Requested status")),
		mcp.WithOutputSchema[VerdictResult](),
	), mcp.NewStructuredToolHandler(s.handleClassify))

	s.mcpServer.AddTool(mcp.NewTool("validate_sequence",
		mcp.WithDescription("Validate a status history step by step."),
		mapArg,
		mcp.WithArray("statuses", mcp.Required(), mcp.Description("Statuses in the order they happened"), mcp.WithStringItems()),
		mcp.WithOutputSchema[SequenceResult](),
	), mcp.NewStructuredToolHandler(s.handleSequence))

	s.mcpServer.AddTool(mcp.NewTool("list_maps",
		mcp.WithDescription("List the available status maps."),
		mcp.WithOutputSchema[MapsResult](),
	), mcp.NewStructuredToolHandler(s.handleListMaps))

	s.mcpServer.AddTool(mcp.NewTool("describe_status",
		mcp.WithDescription("Describe the successors, ancestors and descendants of a status."),
		mapArg,
		mcp.WithString("status", mcp.Required(), mcp.Description("Status name")),
		mcp.WithOutputSchema[StatusResult](),
	), mcp.NewStructuredToolHandler(s.handleDescribeStatus))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the status map as a Mermaid or Graphviz DOT diagram."),
		mapArg,
		mcp.WithString("format", mcp.Description("mermaid (default) or dot"), mcp.Enum("mermaid", "dot")),
	), s.handleGetGraph)
}

func (s *Server) handleClassify(ctx context.Context, _ mcp.CallToolRequest, args ClassifyArgs) (VerdictResult, error) {
	m, err := s.registry.Resolve(ctx, args.Map)
	if err != nil {
		return VerdictResult{}, fmt.Errorf("map %q: %w", args.Map, err)
	}

	v := m.Classify(args.From, args.To)
	res := VerdictResult{
		From:    args.From,
		To:      args.To,
		Outcome: v.Outcome.String(),
		Valid:   v.Valid(),
	}
	if err := v.Err(); err != nil {
		res.Reason = err.Error()
	}
	return res, nil
}

func (s *Server) handleSequence(ctx context.Context, _ mcp.CallToolRequest, args SequenceArgs) (SequenceResult, error) {
	m, err := s.registry.Resolve(ctx, args.Map)
	if err != nil {
		return SequenceResult{}, fmt.Errorf("map %q: %w", args.Map, err)
	}

	err = m.ValidateSequence(args.Statuses...)
	if err == nil {
		return SequenceResult{Valid: true, Index: -1}, nil
	}

	res := SequenceResult{Index: -1, Reason: err.Error()}
	var seqErr *statusmap.SequenceError
	if errors.As(err, &seqErr) {
		res.Index = seqErr.Index
	}
	return res, nil
}

func (s *Server) handleListMaps(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (MapsResult, error) {
	names, err := s.registry.Names(ctx)
	if err != nil {
		return MapsResult{}, err
	}
	return MapsResult{Maps: names}, nil
}

func (s *Server) handleDescribeStatus(ctx context.Context, _ mcp.CallToolRequest, args StatusArgs) (StatusResult, error) {
	m, err := s.registry.Resolve(ctx, args.Map)
	if err != nil {
		return StatusResult{}, fmt.Errorf("map %q: %w", args.Map, err)
	}
	if !m.Contains(args.Status) {
		return StatusResult{}, fmt.Errorf("status %q not found in map %q", args.Status, args.Map)
	}

	return StatusResult{
		Status:   args.Status,
		Next:     m.Next(args.Status),
		Previous: m.Previous(args.Status),
		Upcoming: m.Upcoming(args.Status),
		Terminal: slices.Contains(m.Terminals(), args.Status),
	}, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("map", "")
	format := request.GetString("format", "mermaid")

	m, err := s.registry.Resolve(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("map %q: %v", name, err)), nil
	}

	switch format {
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(m, nil)), nil
	case "dot":
		return mcp.NewToolResultText(graph.GenerateDOT(m, nil)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("statusmap://maps", "Available Status Maps",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.registry.Names(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list maps: %w", err)
		}
		jsonBytes, _ := json.Marshal(MapsResult{Maps: names})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "statusmap://maps",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
