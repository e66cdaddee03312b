package domain

import "time"

const (
	// ToolName is the single tool exposed to the model.
	ToolName = "call_monday_tool"

	// DefaultMaxSteps bounds the number of model calls in one turn.
	DefaultMaxSteps = 5

	// MaxItemsPerCall is the hard ceiling on items fetched by paged operations.
	MaxItemsPerCall = 10

	// DefaultRequestTimeout bounds the total execution time of one chat turn.
	DefaultRequestTimeout = 60 * time.Second
)

// Part kinds accepted from the client. Every other kind is dropped before the model sees it.
const (
	PartText       = "text"
	PartToolCall   = "tool-call"
	PartToolResult = "tool-result"
)

// Finish reasons reported on step events and on the stream.
const (
	FinishStop      = "stop"
	FinishToolCalls = "tool-calls"
	FinishError     = "error"
)
