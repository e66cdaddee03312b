package dispatch

import (
	"context"
	"testing"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_NormalizesBeforeDispatch(t *testing.T) {
	caller := &recordingCaller{answer: map[string]any{"ok": true}}
	var stripped []string
	hooks := domain.LifecycleHooks{
		OnCursorStrip: func(ctx context.Context, c string) { stripped = append(stripped, c) },
	}
	e := NewExecutor(New(caller, WithLogger(nopLogger)), nopLogger, hooks)

	res := e.Execute(context.Background(), "call-9",
		`{"tool_name":"get_board_items_page","arguments":{"board_id":"board-5026840561","limit":50,"cursor":"{{next}}"}}`)

	require.False(t, res.IsError, res.Text)
	assert.Equal(t, "call-9", res.ID)
	assert.Equal(t, monday.OpGetBoardItemsPage, caller.op)
	assert.Equal(t, map[string]any{
		"boardId":        int64(5026840561),
		"limit":          domain.MaxItemsPerCall,
		"includeColumns": true,
	}, caller.args)
	assert.Equal(t, []string{"{{next}}"}, stripped)
	assert.Equal(t, `{"ok":true}`, res.Text)
}

func TestExecutor_InvalidInput(t *testing.T) {
	caller := &recordingCaller{}
	e := NewExecutor(New(caller, WithLogger(nopLogger)), nopLogger, domain.LifecycleHooks{})

	res := e.Execute(context.Background(), "call-1", `not json`)

	assert.True(t, res.IsError)
	assert.Contains(t, res.Text, "Error: invalid tool input")
	assert.Zero(t, caller.calls, "invalid input never reaches the tool")
}
