// Package dispatch executes calls to the external business-data tool.
//
// A Dispatcher performs exactly one external call per invocation and never lets a
// failure escape: errors are demoted to "Error: <message>" text so the model can
// narrate them. An Executor adds the surrounding pipeline (input parsing,
// argument normalization and result shaping) used for model tool calls.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/aretw0/skylark/pkg/ports"
)

// Dispatcher invokes the external tool through a ports.Caller.
type Dispatcher struct {
	caller ports.Caller
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers tool call observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// New creates a Dispatcher backed by caller.
func New(caller ports.Caller, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		caller: caller,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ErrorText formats a failure the way it is shown to the model.
func ErrorText(err error) string {
	return "Error: " + err.Error()
}

// Dispatch executes call.Name with call.Args and returns the shaped result.
// It never returns an error: failures are reported through ToolResult.IsError and Text.
func (d *Dispatcher) Dispatch(ctx context.Context, call domain.ToolCall) (res domain.ToolResult) {
	res = domain.ToolResult{ID: call.ID, Name: call.Name}

	if argsJSON, err := json.Marshal(call.Args); err == nil {
		d.logger.Info("Calling MCP tool", "operation", call.Name, "args", string(argsJSON))
	}

	event := &domain.ToolEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventToolCall},
		ToolName:  call.Name,
		Input:     call.Args,
	}
	if d.hooks.OnToolCall != nil {
		d.hooks.OnToolCall(ctx, event)
	}

	start := time.Now()
	defer func() {
		if d.hooks.OnToolReturn != nil {
			d.hooks.OnToolReturn(ctx, &domain.ToolEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventToolReturn},
				ToolName:  call.Name,
				Input:     call.Args,
				Output:    res.Output,
				IsError:   res.IsError,
				Duration:  time.Since(start),
			})
		}
	}()

	data, err := d.call(ctx, call)
	if err != nil {
		d.logger.Error("MCP tool error", "operation", call.Name, "error", err)
		res.IsError = true
		res.Error = err.Error()
		res.Text = ErrorText(err)
		return res
	}

	res.Output, res.Text = monday.Compress(data)
	return res
}

// call isolates the caller so that a panicking transport is demoted like any other failure.
func (d *Dispatcher) call(ctx context.Context, call domain.ToolCall) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool call panicked: %v", r)
		}
	}()
	return d.caller.Call(ctx, call.Name, call.Args)
}
