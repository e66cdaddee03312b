package monday

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ToolDescription is the description shown to the model for the single exposed tool.
var ToolDescription = "Monday.com MCP integration. Tools: " + strings.Join(Operations, ", ") + "."

// Tool returns the definition of the business-data tool exposed to the model.
func Tool() domain.Tool {
	return domain.Tool{
		Name:        domain.ToolName,
		Description: ToolDescription,
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tool_name": map[string]any{
					"type":        "string",
					"description": "The Monday MCP tool name to call.",
				},
				"arguments": map[string]any{
					"type":        "object",
					"description": "Arguments for the tool. Pass {} if no arguments needed.",
					"properties": map[string]any{
						"board_id": map[string]any{
							"anyOf": []any{
								map[string]any{"type": "number"},
								map[string]any{"type": "string"},
							},
						},
						"query":      map[string]any{"type": "string"},
						"searchType": map[string]any{"type": "string", "enum": SearchTypes},
						"limit":      map[string]any{"type": "number", "default": domain.MaxItemsPerCall},
						"cursor":     map[string]any{"type": "string"},
					},
				},
			},
			"required": []string{"tool_name"},
		},
	}
}

// CallInput is the decoded input of a call_monday_tool invocation.
type CallInput struct {
	Operation string         `json:"tool_name"`
	Args      map[string]any `json:"arguments"`
}

// arguments is the typed view used to validate and coerce the argument bag.
type arguments struct {
	BoardID    any      `mapstructure:"board_id"`
	Query      *string  `mapstructure:"query"`
	SearchType *string  `mapstructure:"searchType"`
	Limit      *float64 `mapstructure:"limit"`
	Cursor     *string  `mapstructure:"cursor"`
}

// ParseCallInput decodes the raw JSON arguments produced by the model.
// Missing arguments default to {limit: 10}; a missing limit defaults to 10 and numeric
// strings are coerced to numbers. Fields outside the schema are dropped.
func ParseCallInput(raw string) (CallInput, error) {
	var envelope struct {
		ToolName  string         `json:"tool_name"`
		Arguments map[string]any `json:"arguments"`
	}
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return CallInput{}, fmt.Errorf("invalid tool input: %w", err)
	}
	if envelope.ToolName == "" {
		return CallInput{}, fmt.Errorf("invalid tool input: tool_name is required")
	}

	args, err := coerceArguments(envelope.Arguments)
	if err != nil {
		return CallInput{}, err
	}
	return CallInput{Operation: envelope.ToolName, Args: args}, nil
}

func coerceArguments(in map[string]any) (map[string]any, error) {
	if in == nil {
		in = map[string]any{}
	}
	var a arguments
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &a,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(in); err != nil {
		return nil, fmt.Errorf("invalid tool arguments: %w", err)
	}

	out := map[string]any{}
	switch v := a.BoardID.(type) {
	case nil:
	case string, float64, int, int64:
		out["board_id"] = v
	default:
		return nil, fmt.Errorf("invalid tool arguments: board_id must be a number or a string, got %T", v)
	}
	if a.Query != nil {
		out["query"] = *a.Query
	}
	if a.SearchType != nil {
		if !slices.Contains(SearchTypes, *a.SearchType) {
			return nil, fmt.Errorf("invalid tool arguments: searchType must be one of %s", strings.Join(SearchTypes, ", "))
		}
		out["searchType"] = *a.SearchType
	}
	if a.Limit != nil {
		out["limit"] = *a.Limit
	} else {
		out["limit"] = float64(domain.MaxItemsPerCall)
	}
	if a.Cursor != nil {
		out["cursor"] = *a.Cursor
	}
	return out, nil
}
