package domain

// Role identifies the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one chat turn as exchanged with the UI.
type Message struct {
	ID    string `json:"id,omitempty" mapstructure:"id"`
	Role  Role   `json:"role" mapstructure:"role"`
	Parts []Part `json:"parts" mapstructure:"parts"`
}

// Part is a fragment of a Message. Which fields are set depends on Type.
type Part struct {
	Type       string `json:"type" mapstructure:"type"`
	Text       string `json:"text,omitempty" mapstructure:"text"`
	ToolCallID string `json:"toolCallId,omitempty" mapstructure:"toolCallId"`
	ToolName   string `json:"toolName,omitempty" mapstructure:"toolName"`
	Input      any    `json:"input,omitempty" mapstructure:"input"`
	Output     any    `json:"output,omitempty" mapstructure:"output"`
	ErrorText  string `json:"errorText,omitempty" mapstructure:"errorText"`
}

// TextMessage is a convenience constructor for a single-part text turn.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Parts: []Part{{Type: PartText, Text: text}}}
}

// Text concatenates the text parts of the message.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if p.Type == PartText {
			out += p.Text
		}
	}
	return out
}
