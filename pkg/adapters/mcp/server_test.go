package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	lastInput string
	result    domain.ToolResult
}

func (e *stubExecutor) Execute(ctx context.Context, callID, rawInput string) domain.ToolResult {
	e.lastInput = rawInput
	return e.result
}

func connectInProcess(t *testing.T, s *Server) *client.Client {
	t.Helper()
	ctx := context.Background()

	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { c.Close() })

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)
	return c
}

func callTool(t *testing.T, c *client.Client, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = domain.ToolName
	req.Params.Arguments = args
	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestServer_ListsSingleTool(t *testing.T) {
	c := connectInProcess(t, NewServer(&stubExecutor{}))

	tools, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, domain.ToolName, tools.Tools[0].Name)
	assert.Equal(t, monday.ToolDescription, tools.Tools[0].Description)
}

func TestServer_CallTool(t *testing.T) {
	exec := &stubExecutor{result: domain.ToolResult{Text: `[{"name":"Naruto","values":{"status":"Open"}}]`}}
	c := connectInProcess(t, NewServer(exec))

	res := callTool(t, c, map[string]any{
		"tool_name": "get_board_items_page",
		"arguments": map[string]any{"board_id": "board-5026840561"},
	})

	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	assert.Equal(t, exec.result.Text, text.Text)
	assert.JSONEq(t, `{"tool_name":"get_board_items_page","arguments":{"board_id":"board-5026840561"}}`, exec.lastInput)
}

func TestServer_CallToolError(t *testing.T) {
	exec := &stubExecutor{result: domain.ToolResult{IsError: true, Text: "Error: ECONNREFUSED"}}
	c := connectInProcess(t, NewServer(exec))

	res := callTool(t, c, map[string]any{"tool_name": "search"})

	assert.True(t, res.IsError)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	assert.Equal(t, "Error: ECONNREFUSED", text.Text)
}

func TestServer_PromptResource(t *testing.T) {
	c := connectInProcess(t, NewServer(&stubExecutor{}))

	req := mcp.ReadResourceRequest{}
	req.Params.URI = PromptResourceURI
	res, err := c.ReadResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	b, err := json.Marshal(res.Contents[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "Skylark")
	assert.Contains(t, string(b), PromptResourceURI)
}
