package conversation

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/tmc/langchaingo/llms"
)

// Convert maps sanitized history to provider messages, system prompt first.
// Tool results become tool messages following the turn that carried them.
func Convert(systemPrompt string, history []domain.Message) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(history)+1)
	if systemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}

	for _, m := range history {
		var parts []llms.ContentPart
		var responses []llms.ContentPart
		for _, p := range m.Parts {
			switch p.Type {
			case domain.PartText:
				parts = append(parts, llms.TextPart(p.Text))
			case domain.PartToolCall:
				parts = append(parts, llms.ToolCall{
					ID:   p.ToolCallID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      p.ToolName,
						Arguments: stringify(p.Input),
					},
				})
			case domain.PartToolResult:
				content := stringify(p.Output)
				if p.ErrorText != "" {
					content = p.ErrorText
				}
				responses = append(responses, llms.ToolCallResponse{
					ToolCallID: p.ToolCallID,
					Name:       p.ToolName,
					Content:    content,
				})
			}
		}

		if len(parts) > 0 {
			messages = append(messages, llms.MessageContent{Role: chatType(m.Role), Parts: parts})
		}
		for _, r := range responses {
			messages = append(messages, llms.MessageContent{
				Role:  llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{r},
			})
		}
	}
	return messages
}

func chatType(r domain.Role) llms.ChatMessageType {
	switch r {
	case domain.RoleAssistant:
		return llms.ChatMessageTypeAI
	case domain.RoleSystem:
		return llms.ChatMessageTypeSystem
	case domain.RoleTool:
		return llms.ChatMessageTypeTool
	default:
		return llms.ChatMessageTypeHuman
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "{}"
	case string:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
