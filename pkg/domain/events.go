package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepFinish EventType = "step_finish"
	EventToolCall   EventType = "tool_call"
	EventToolReturn EventType = "tool_return"
	EventCursor     EventType = "cursor_stripped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	TurnID    string    `json:"turn_id,omitempty"`
}

// StepEvent is emitted after each model step of a turn.
type StepEvent struct {
	EventBase
	Step         int          `json:"step"`
	Text         string       `json:"text"`
	ToolCalls    []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults  []ToolResult `json:"tool_results,omitempty"`
	FinishReason string       `json:"finish_reason"`
	// Final is set on the step that ends the turn.
	Final        bool         `json:"final,omitempty"`
}

// ToolEvent represents one external tool execution.
type ToolEvent struct {
	EventBase
	ToolName string        `json:"tool_name"`
	Input    any           `json:"input,omitempty"`
	Output   any           `json:"output,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for turn observability.
// Every field is optional.
type LifecycleHooks struct {
	OnStepFinish  func(context.Context, *StepEvent)
	OnToolCall    func(context.Context, *ToolEvent)
	OnToolReturn  func(context.Context, *ToolEvent)
	OnCursorStrip func(context.Context, string)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepFinish:  chain(h.OnStepFinish, other.OnStepFinish),
		OnToolCall:    chain(h.OnToolCall, other.OnToolCall),
		OnToolReturn:  chain(h.OnToolReturn, other.OnToolReturn),
		OnCursorStrip: chain(h.OnCursorStrip, other.OnCursorStrip),
	}
}

func chain[T any](a, b func(context.Context, T)) func(context.Context, T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, v T) {
		a(ctx, v)
		b(ctx, v)
	}
}
