package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Client identity announced to the Monday.com MCP server.
const (
	ClientName    = "skylark-bi-client"
	ClientVersion = "1.0.0"
)

// ClientConfig describes how to spawn the external MCP server.
type ClientConfig struct {
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	TokenEnv    string            `yaml:"token_env" json:"token_env"`
	TokenFlag   string            `yaml:"token_flag" json:"token_flag"`
	Environment map[string]string `yaml:"env" json:"env"`
}

// DefaultClientConfig runs the published Monday.com MCP server through npx.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Command:   "npx",
		Args:      []string{"-y", "@mondaydotcomorg/monday-api-mcp@latest"},
		TokenEnv:  "MONDAY_API_TOKEN",
		TokenFlag: "-t",
		Environment: map[string]string{
			"npm_config_cache": "/tmp/.npm",
		},
	}
}

// Session is the subset of an MCP client used per call.
// *client.Client satisfies it.
type Session interface {
	Initialize(ctx context.Context, req mcp.InitializeRequest) (*mcp.InitializeResult, error)
	CallTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// Connector opens a new Session authenticated with token.
type Connector func(ctx context.Context, token string) (Session, error)

// Caller implements ports.Caller by opening a fresh MCP session for every call.
// Sessions are never pooled; each one is closed before Call returns.
type Caller struct {
	cfg     ClientConfig
	connect Connector
	getenv  func(string) string
	logger  *slog.Logger
}

// CallerOption configures a Caller.
type CallerOption func(*Caller)

// WithConnector replaces the subprocess connector (used by tests and in-process servers).
func WithConnector(connect Connector) CallerOption {
	return func(c *Caller) {
		c.connect = connect
	}
}

// WithGetenv replaces the environment lookup for the token.
func WithGetenv(getenv func(string) string) CallerOption {
	return func(c *Caller) {
		c.getenv = getenv
	}
}

// WithCallerLogger sets the structured logger.
func WithCallerLogger(logger *slog.Logger) CallerOption {
	return func(c *Caller) {
		c.logger = logger
	}
}

// NewCaller creates a Caller for cfg. By default it spawns cfg.Command over stdio.
func NewCaller(cfg ClientConfig, opts ...CallerOption) *Caller {
	c := &Caller{
		cfg:    cfg,
		getenv: os.Getenv,
		logger: slog.Default(),
	}
	c.connect = c.spawn
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Caller) spawn(ctx context.Context, token string) (Session, error) {
	args := append([]string{}, c.cfg.Args...)
	if c.cfg.TokenFlag != "" {
		args = append(args, c.cfg.TokenFlag, token)
	}
	env := make([]string, 0, len(c.cfg.Environment))
	for k, v := range c.cfg.Environment {
		env = append(env, k+"="+v)
	}
	return client.NewStdioMCPClient(c.cfg.Command, env, args...)
}

// Call implements ports.Caller.
func (c *Caller) Call(ctx context.Context, operation string, args map[string]any) (any, error) {
	token := c.getenv(c.cfg.TokenEnv)
	if token == "" {
		return nil, fmt.Errorf("%s %w", c.cfg.TokenEnv, domain.ErrMissingToken)
	}

	sess, err := c.connect(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			c.logger.Debug("MCP session close failed", "error", cerr)
		}
	}()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: ClientName, Version: ClientVersion}
	initReq.Params.Capabilities = mcp.ClientCapabilities{}
	if _, err := sess.Initialize(ctx, initReq); err != nil {
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = operation
	req.Params.Arguments = args

	result, err := sess.CallTool(ctx, req)
	if err != nil {
		c.logger.Error("Error executing Monday MCP tool", "operation", operation, "error", err)
		return nil, err
	}

	text, found := firstText(result.Content)
	if result.IsError {
		return nil, fmt.Errorf("%w: %s", domain.ErrToolFailed, strings.TrimSpace(text))
	}
	if !found {
		return nil, nil
	}
	return decodeText(text), nil
}

func firstText(content []mcp.Content) (string, bool) {
	for _, block := range content {
		if tc, ok := mcp.AsTextContent(block); ok {
			return tc.Text, true
		}
	}
	return "", false
}

// decodeText parses JSON when possible and returns the raw text otherwise.
func decodeText(text string) any {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	return text
}
