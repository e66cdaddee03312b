package ports

import "context"

// Caller invokes a named operation on the external business-data tool.
// The returned value is the decoded payload: a JSON value when the tool answered
// with JSON text, the raw string otherwise, or nil when no text block was returned.
// Transport choice (subprocess, network, in-process fake) is left to the implementation.
type Caller interface {
	Call(ctx context.Context, operation string, args map[string]any) (any, error)
}

// CallerFunc adapts an ordinary function to the Caller interface.
type CallerFunc func(ctx context.Context, operation string, args map[string]any) (any, error)

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, operation string, args map[string]any) (any, error) {
	return f(ctx, operation, args)
}
