// Package mcp connects Skylark to the Model Context Protocol in both directions:
// Caller spawns the Monday.com MCP server to fetch business data, and Server
// re-exposes the normalized, token-economical tool to other MCP agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/skylark"
	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PromptResourceURI exposes the assistant operating policy.
const PromptResourceURI = "skylark://system-prompt"

// Executor runs one raw tool invocation through the normalize/dispatch/shape pipeline.
type Executor interface {
	Execute(ctx context.Context, callID, rawInput string) domain.ToolResult
}

// Server exposes the business-data tool as an MCP Server.
type Server struct {
	executor  Executor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(executor Executor) *Server {
	s := &Server{
		executor:  executor,
		mcpServer: server.NewMCPServer("skylark-mcp", strings.TrimSpace(skylark.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	tool := mcp.NewTool(domain.ToolName,
		mcp.WithDescription(monday.ToolDescription),
		mcp.WithString("tool_name", mcp.Required(), mcp.Description("The Monday MCP tool name to call."), mcp.Enum(monday.Operations...)),
		mcp.WithObject("arguments", mcp.Description("Arguments for the tool. Pass {} if no arguments needed.")),
	)
	s.mcpServer.AddTool(tool, s.handleCall)
}

func (s *Server) handleCall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	res := s.executor.Execute(ctx, uuid.NewString(), string(raw))
	if res.IsError {
		return mcp.NewToolResultError(res.Text), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PromptResourceURI, "Skylark System Prompt",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PromptResourceURI,
				MIMEType: "text/plain",
				Text:     monday.SystemPrompt,
			},
		}, nil
	})
}
