package dispatch

import (
	"context"
	"log/slog"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
)

// Executor turns a raw model tool call into a dispatched, shaped ToolResult.
type Executor struct {
	Dispatcher *Dispatcher
	Normalizer monday.Normalizer
}

// NewExecutor wires a normalizer that reports stripped cursors through hooks.
func NewExecutor(d *Dispatcher, logger *slog.Logger, hooks domain.LifecycleHooks) *Executor {
	n := monday.Normalizer{Logger: logger}
	if hooks.OnCursorStrip != nil {
		n.OnCursorStrip = func(cursor string) {
			hooks.OnCursorStrip(context.Background(), cursor)
		}
	}
	return &Executor{Dispatcher: d, Normalizer: n}
}

// Execute parses rawInput ({tool_name, arguments}), normalizes the arguments and
// dispatches the call. Invalid input is reported as an error result, never as a Go error.
func (e *Executor) Execute(ctx context.Context, callID, rawInput string) domain.ToolResult {
	in, err := monday.ParseCallInput(rawInput)
	if err != nil {
		return domain.ToolResult{
			ID:      callID,
			IsError: true,
			Error:   err.Error(),
			Text:    ErrorText(err),
		}
	}

	args := e.Normalizer.Normalize(in.Operation, in.Args)
	return e.Dispatcher.Dispatch(ctx, domain.ToolCall{
		ID:   callID,
		Name: in.Operation,
		Args: args,
	})
}
