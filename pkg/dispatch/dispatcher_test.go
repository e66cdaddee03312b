package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/aretw0/skylark/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// recordingCaller captures the last call and answers with a fixed value.
type recordingCaller struct {
	calls  int
	op     string
	args   map[string]any
	answer any
	err    error
}

func (c *recordingCaller) Call(ctx context.Context, op string, args map[string]any) (any, error) {
	c.calls++
	c.op = op
	c.args = args
	return c.answer, c.err
}

func TestDispatch_ConnectionFailure(t *testing.T) {
	caller := &recordingCaller{err: errors.New("ECONNREFUSED")}
	d := New(caller, WithLogger(nopLogger))

	var res domain.ToolResult
	require.NotPanics(t, func() {
		res = d.Dispatch(context.Background(), domain.ToolCall{ID: "call-1", Name: monday.OpListWorkspaces})
	})

	assert.Equal(t, "Error: ECONNREFUSED", res.Text)
	assert.True(t, res.IsError)
	assert.Equal(t, "call-1", res.ID)
	assert.Equal(t, 1, caller.calls, "exactly one external call per dispatch")
}

func TestDispatch_MissingToken(t *testing.T) {
	d := New(ports.CallerFunc(func(ctx context.Context, op string, args map[string]any) (any, error) {
		return nil, fmt.Errorf("MONDAY_API_TOKEN %w", domain.ErrMissingToken)
	}), WithLogger(nopLogger))

	res := d.Dispatch(context.Background(), domain.ToolCall{Name: monday.OpSearch})
	assert.Equal(t, "Error: MONDAY_API_TOKEN environment variable is missing", res.Text)
}

func TestDispatch_PanicIsDemoted(t *testing.T) {
	d := New(ports.CallerFunc(func(ctx context.Context, op string, args map[string]any) (any, error) {
		panic("transport exploded")
	}), WithLogger(nopLogger))

	res := d.Dispatch(context.Background(), domain.ToolCall{Name: monday.OpSearch})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "transport exploded")
}

func TestDispatch_ShapesItemsPage(t *testing.T) {
	caller := &recordingCaller{answer: map[string]any{
		"boards": []any{map[string]any{"items_page": map[string]any{"items": []any{
			map[string]any{"name": "Naruto", "column_values": []any{map[string]any{"id": "status", "text": "Open"}}},
		}}}},
	}}
	d := New(caller, WithLogger(nopLogger))

	res := d.Dispatch(context.Background(), domain.ToolCall{Name: monday.OpGetBoardItemsPage, Args: map[string]any{"boardId": int64(1)}})

	assert.False(t, res.IsError)
	assert.JSONEq(t, `[{"name":"Naruto","values":{"status":"Open"}}]`, res.Text)
	assert.IsType(t, []monday.CompactItem{}, res.Output)
}

func TestDispatch_Hooks(t *testing.T) {
	var calls, returns []*domain.ToolEvent
	hooks := domain.LifecycleHooks{
		OnToolCall:   func(ctx context.Context, e *domain.ToolEvent) { calls = append(calls, e) },
		OnToolReturn: func(ctx context.Context, e *domain.ToolEvent) { returns = append(returns, e) },
	}
	d := New(&recordingCaller{err: errors.New("boom")}, WithLogger(nopLogger), WithLifecycleHooks(hooks))

	d.Dispatch(context.Background(), domain.ToolCall{Name: monday.OpGetBoardSchema})

	require.Len(t, calls, 1)
	require.Len(t, returns, 1)
	assert.Equal(t, monday.OpGetBoardSchema, returns[0].ToolName)
	assert.True(t, returns[0].IsError)
	assert.Equal(t, domain.EventToolReturn, returns[0].Type)
}
