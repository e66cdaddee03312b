package domain

// ToolCall represents the model's request to perform a side-effect.
// Name is the operation forwarded to the external tool (e.g. get_board_items_page),
// not the name of the tool exposed to the model.
type ToolCall struct {
	ID   string         `json:"id" yaml:"id" mapstructure:"id"`
	Name string         `json:"name" yaml:"name" mapstructure:"name"`
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`
}

// ToolResult represents the output of a side-effect.
// Text is the exact content handed back to the model.
type ToolResult struct {
	ID      string `json:"id"` // Must match the ToolCall.ID
	Name    string `json:"name,omitempty"`
	Output  any    `json:"output,omitempty"`
	Text    string `json:"text"`
	IsError bool   `json:"is_error,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Tool defines metadata about a tool available to the model.
// This is used for generating provider schemas.
type Tool struct {
	Name        string         `json:"name" yaml:"name" mapstructure:"name"`
	Description string         `json:"description" yaml:"description" mapstructure:"description"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
}
