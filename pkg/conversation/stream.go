package conversation

import (
	"strings"
	"sync"
)

// ChunkType names a UI message stream chunk.
type ChunkType string

const (
	ChunkStart      ChunkType = "start"
	ChunkStartStep  ChunkType = "start-step"
	ChunkTextStart  ChunkType = "text-start"
	ChunkTextDelta  ChunkType = "text-delta"
	ChunkTextEnd    ChunkType = "text-end"
	ChunkToolInput  ChunkType = "tool-input-available"
	ChunkToolOutput ChunkType = "tool-output-available"
	ChunkToolError  ChunkType = "tool-output-error"
	ChunkFinishStep ChunkType = "finish-step"
	ChunkFinish     ChunkType = "finish"
	ChunkError      ChunkType = "error"
)

// Chunk is one event of a turn as seen by the client. The handler never
// sends tool-output-available with a nil Output.
type Chunk struct {
	Type       ChunkType `json:"type"`
	MessageID  string    `json:"messageId,omitempty"`
	ID         string    `json:"id,omitempty"`
	Delta      string    `json:"delta,omitempty"`
	ToolCallID string    `json:"toolCallId,omitempty"`
	ToolName   string    `json:"toolName,omitempty"`
	Input      any       `json:"input,omitempty"`
	Output     any       `json:"output,omitempty"`
	ErrorText  string    `json:"errorText,omitempty"`
}

// Sink receives the chunks of a turn in order.
type Sink interface {
	Send(Chunk) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Chunk) error

func (f SinkFunc) Send(c Chunk) error { return f(c) }

// Transcript is a Sink that keeps every chunk and the streamed text.
type Transcript struct {
	mu     sync.Mutex
	Chunks []Chunk
	text   strings.Builder
}

func (t *Transcript) Send(c Chunk) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Chunks = append(t.Chunks, c)
	if c.Type == ChunkTextDelta {
		t.text.WriteString(c.Delta)
	}
	return nil
}

// Text returns the concatenated text deltas.
func (t *Transcript) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text.String()
}

// Types lists the chunk types received so far.
func (t *Transcript) Types() []ChunkType {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ChunkType, len(t.Chunks))
	for i, c := range t.Chunks {
		out[i] = c.Type
	}
	return out
}
