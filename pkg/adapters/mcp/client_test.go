package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMonday builds an in-process stand-in for the Monday.com MCP server.
func fakeMonday() *server.MCPServer {
	s := server.NewMCPServer("fake-monday", "0.0.1")

	s.AddTool(mcp.NewTool("get_board_items_page"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, _ := json.Marshal(map[string]any{"echo": req.GetArguments()})
		return mcp.NewToolResultText(string(b)), nil
	})
	s.AddTool(mcp.NewTool("plain"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("Board not shared with you"), nil
	})
	s.AddTool(mcp.NewTool("empty"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{Content: []mcp.Content{}}, nil
	})
	s.AddTool(mcp.NewTool("broken"), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("Invalid board id"), nil
	})
	return s
}

type countingSession struct {
	Session
	closed *int
}

func (s countingSession) Close() error {
	*s.closed++
	return s.Session.Close()
}

func newTestCaller(t *testing.T, token string) (*Caller, *int, *int) {
	t.Helper()
	srv := fakeMonday()
	opened, closed := 0, 0

	connect := func(ctx context.Context, tok string) (Session, error) {
		assert.Equal(t, token, tok)
		c, err := client.NewInProcessClient(srv)
		if err != nil {
			return nil, err
		}
		if err := c.Start(ctx); err != nil {
			return nil, err
		}
		opened++
		return countingSession{Session: c, closed: &closed}, nil
	}

	caller := NewCaller(DefaultClientConfig(),
		WithConnector(connect),
		WithGetenv(func(key string) string {
			if key == "MONDAY_API_TOKEN" {
				return token
			}
			return ""
		}),
		WithCallerLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return caller, &opened, &closed
}

func TestCaller_ParsesJSONText(t *testing.T) {
	caller, opened, closed := newTestCaller(t, "secret")

	got, err := caller.Call(context.Background(), "get_board_items_page", map[string]any{"boardId": int64(5026840561), "limit": 10})
	require.NoError(t, err)

	echo := got.(map[string]any)["echo"].(map[string]any)
	assert.Equal(t, float64(5026840561), echo["boardId"])
	assert.Equal(t, float64(10), echo["limit"])
	assert.Equal(t, 1, *opened)
	assert.Equal(t, 1, *closed, "session is torn down after success")
}

func TestCaller_RawTextAndEmpty(t *testing.T) {
	caller, opened, closed := newTestCaller(t, "secret")

	got, err := caller.Call(context.Background(), "plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "Board not shared with you", got)

	got, err = caller.Call(context.Background(), "empty", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Equal(t, 2, *opened, "a fresh session per call")
	assert.Equal(t, 2, *closed)
}

func TestCaller_ToolError(t *testing.T) {
	caller, _, closed := newTestCaller(t, "secret")

	_, err := caller.Call(context.Background(), "broken", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrToolFailed))
	assert.Contains(t, err.Error(), "Invalid board id")
	assert.Equal(t, 1, *closed, "session is torn down after failure")
}

func TestCaller_MissingToken(t *testing.T) {
	caller, opened, _ := newTestCaller(t, "")

	_, err := caller.Call(context.Background(), "get_board_items_page", nil)
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	assert.EqualError(t, err, "MONDAY_API_TOKEN environment variable is missing")
	assert.Zero(t, *opened, "no connection is attempted without a token")
}

func TestCaller_MissingTokenNamesConfiguredVariable(t *testing.T) {
	cfg := DefaultClientConfig()
	cfg.TokenEnv = "SKYLARK_MONDAY_TOKEN"
	caller := NewCaller(cfg,
		WithGetenv(func(string) string { return "" }),
		WithConnector(func(ctx context.Context, token string) (Session, error) {
			t.Fatal("connector must not be called without a token")
			return nil, nil
		}),
	)

	_, err := caller.Call(context.Background(), "search", nil)
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	assert.EqualError(t, err, "SKYLARK_MONDAY_TOKEN environment variable is missing")
}

func TestCaller_ConnectFailure(t *testing.T) {
	caller := NewCaller(DefaultClientConfig(),
		WithGetenv(func(string) string { return "secret" }),
		WithConnector(func(ctx context.Context, token string) (Session, error) {
			return nil, errors.New("ECONNREFUSED")
		}),
	)

	_, err := caller.Call(context.Background(), "search", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ECONNREFUSED")
}

func TestDecodeText(t *testing.T) {
	assert.Equal(t, map[string]any{"a": float64(1)}, decodeText(`{"a":1}`))
	assert.Equal(t, []any{"x"}, decodeText(`["x"]`))
	assert.Equal(t, "hello", decodeText("hello"))
}
