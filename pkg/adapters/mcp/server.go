package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/gymnasion"
	"github.com/aretw0/gymnasion/internal/logging"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/strategy"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "gymnasion-mcp"

	// DefaultSessionID is used when a tool call names no session.
	DefaultSessionID = "mcp"

	modesURI = "gymnasion://modes"
)

// Engine defines what the MCP server needs from the gymnasion engine.
type Engine interface {
	ProcessTurn(ctx context.Context, sessionID, text, mode string) (domain.TurnResult, error)
	Status(ctx context.Context, sessionID string) (domain.Status, error)
	Reset(ctx context.Context, sessionID string) error
	Strategies() *strategy.Set
}

// AnalyzeInput is the argument set of analyze_text.
type AnalyzeInput struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
	Mode      string `json:"mode"`
}

// SessionInput names a session.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

// AnalyzeResult is the structured output of analyze_text.
type AnalyzeResult struct {
	Response string        `json:"response" jsonschema_description:"The literary prompt answering the line"`
	Mode     string        `json:"mode" jsonschema_description:"The mode the turn ran in"`
	Status   domain.Status `json:"status" jsonschema_description:"Session state after the turn"`
}

// StatusResult is the structured output of session_status and reset_session.
type StatusResult struct {
	SessionID string        `json:"session_id"`
	Status    domain.Status `json:"status"`
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine: engine,
		logger: logger,
		mcpServer: server.NewMCPServer(serverName, strings.TrimSpace(gymnasion.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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

func modeNames() []string {
	names := make([]string, 0, len(domain.Modes()))
	for _, m := range domain.Modes() {
		names = append(names, string(m))
	}
	return names
}

func (s *Server) registerTools() {
	analyzeTool := mcp.NewTool("analyze_text",
		mcp.WithDescription("Answer one line of writing with a literary prompt. The session remembers every line."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The line the writer just wrote")),
		mcp.WithString("mode", mcp.Description("Strategy mode"), mcp.Enum(modeNames()...)),
		mcp.WithString("session_id", mcp.Description("Session to continue (default \""+DefaultSessionID+"\")")),
		mcp.WithOutputSchema[AnalyzeResult](),
	)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyze)

	resetTool := mcp.NewTool("reset_session",
		mcp.WithDescription("Forget everything a session has written and start over."),
		mcp.WithString("session_id", mcp.Description("Session to reset")),
		mcp.WithOutputSchema[StatusResult](),
	)
	s.mcpServer.AddTool(resetTool, s.handleReset)

	statusTool := mcp.NewTool("session_status",
		mcp.WithDescription("Report banished words, the imitation target, words written and boredom."),
		mcp.WithString("session_id", mcp.Description("Session to inspect")),
		mcp.WithOutputSchema[StatusResult](),
	)
	s.mcpServer.AddTool(statusTool, s.handleStatus)
}

func sessionOrDefault(id string) string {
	if id == "" {
		return DefaultSessionID
	}
	return id
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input AnalyzeInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid analyze_text arguments", err), nil
	}
	sessionID := sessionOrDefault(input.SessionID)

	res, err := s.engine.ProcessTurn(ctx, sessionID, input.Text, input.Mode)
	if err != nil {
		s.logger.Warn("MCP analyze_text failed", "err", err, "session_id", sessionID)
		return mcp.NewToolResultErrorFromErr("analyze_text failed", err), nil
	}

	return mcp.NewToolResultStructured(AnalyzeResult{
		Response: res.Response,
		Mode:     string(res.Mode),
		Status:   res.Status,
	}, res.Response), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SessionInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid reset_session arguments", err), nil
	}
	sessionID := sessionOrDefault(input.SessionID)

	if err := s.engine.Reset(ctx, sessionID); err != nil {
		return mcp.NewToolResultErrorFromErr("reset_session failed", err), nil
	}
	return s.statusResult(ctx, sessionID)
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SessionInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid session_status arguments", err), nil
	}
	return s.statusResult(ctx, sessionOrDefault(input.SessionID))
}

func (s *Server) statusResult(ctx context.Context, sessionID string) (*mcp.CallToolResult, error) {
	st, err := s.engine.Status(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("session_status failed", err), nil
	}
	fallback := fmt.Sprintf("%d words written, boredom %d", st.WordCount, st.Boredom)
	return mcp.NewToolResultStructured(StatusResult{SessionID: sessionID, Status: st}, fallback), nil
}

// ModeInfo describes one mode and the strategies in its pool.
type ModeInfo struct {
	Mode       string   `json:"mode"`
	Strategies []string `json:"strategies"`
}

// Modes lists every mode with its strategy pool.
func (s *Server) Modes() []ModeInfo {
	set := s.engine.Strategies()
	infos := make([]ModeInfo, 0, len(domain.Modes()))
	for _, m := range domain.Modes() {
		info := ModeInfo{Mode: string(m), Strategies: []string{}}
		for _, st := range set.Pool(m) {
			info.Strategies = append(info.Strategies, st.Name)
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(modesURI, "Modes and their strategies",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := json.Marshal(s.Modes())
		if err != nil {
			return nil, fmt.Errorf("failed to encode modes: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      modesURI,
				MIMEType: "application/json",
				Text:     string(payload),
			},
		}, nil
	})
}
