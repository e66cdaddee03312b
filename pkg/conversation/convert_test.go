package conversation

import (
	"testing"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestConvert(t *testing.T) {
	history := []domain.Message{
		domain.TextMessage(domain.RoleUser, "Find Naruto"),
		{
			Role: domain.RoleAssistant,
			Parts: []domain.Part{
				{Type: domain.PartText, Text: "Looking."},
				{Type: domain.PartToolCall, ToolCallID: "c1", ToolName: domain.ToolName, Input: map[string]any{"tool_name": "search"}},
				{Type: domain.PartToolResult, ToolCallID: "c1", ToolName: domain.ToolName, Output: []any{"a"}},
			},
		},
		{
			Role:  domain.RoleTool,
			Parts: []domain.Part{{Type: domain.PartToolResult, ToolCallID: "c2", ErrorText: "Error: boom"}},
		},
	}

	msgs := Convert("be nice", history)
	require.Len(t, msgs, 5)

	assert.Equal(t, llms.ChatMessageTypeSystem, msgs[0].Role)
	assert.Equal(t, llms.TextContent{Text: "be nice"}, msgs[0].Parts[0])

	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[1].Role)

	assert.Equal(t, llms.ChatMessageTypeAI, msgs[2].Role)
	require.Len(t, msgs[2].Parts, 2)
	call := msgs[2].Parts[1].(llms.ToolCall)
	assert.Equal(t, "c1", call.ID)
	assert.JSONEq(t, `{"tool_name":"search"}`, call.FunctionCall.Arguments)

	assert.Equal(t, llms.ChatMessageTypeTool, msgs[3].Role)
	assert.Equal(t, `["a"]`, msgs[3].Parts[0].(llms.ToolCallResponse).Content)

	assert.Equal(t, "Error: boom", msgs[4].Parts[0].(llms.ToolCallResponse).Content)
}

func TestConvert_NoSystemPrompt(t *testing.T) {
	msgs := Convert("", []domain.Message{domain.TextMessage(domain.RoleUser, "hi")})
	require.Len(t, msgs, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[0].Role)
}
