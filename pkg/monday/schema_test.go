package monday

import (
	"strings"
	"testing"

	"github.com/aretw0/skylark/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallInput(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantOp  string
		want    map[string]any
		wantErr string
	}{
		{
			name:   "Defaults Limit When Arguments Missing",
			raw:    `{"tool_name":"list_workspaces"}`,
			wantOp: OpListWorkspaces,
			want:   map[string]any{"limit": float64(10)},
		},
		{
			name:   "Coerces Numeric String Limit",
			raw:    `{"tool_name":"search","arguments":{"query":"Deals","searchType":"BOARD","limit":"3"}}`,
			wantOp: OpSearch,
			want:   map[string]any{"query": "Deals", "searchType": "BOARD", "limit": float64(3)},
		},
		{
			name:   "Keeps Board ID Union",
			raw:    `{"tool_name":"get_board_info","arguments":{"board_id":"board-5026840561","cursor":"c1","extra":true}}`,
			wantOp: OpGetBoardInfo,
			want:   map[string]any{"board_id": "board-5026840561", "cursor": "c1", "limit": float64(10)},
		},
		{name: "Missing Tool Name", raw: `{"arguments":{}}`, wantErr: "tool_name is required"},
		{name: "Broken JSON", raw: `{"tool_name":`, wantErr: "invalid tool input"},
		{name: "Bad Search Type", raw: `{"tool_name":"search","arguments":{"searchType":"PEOPLE"}}`, wantErr: "searchType"},
		{name: "Bad Limit", raw: `{"tool_name":"search","arguments":{"limit":"lots"}}`, wantErr: "invalid tool arguments"},
		{name: "Bad Board ID", raw: `{"tool_name":"get_board_info","arguments":{"board_id":true}}`, wantErr: "board_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseCallInput(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOp, in.Operation)
			assert.Equal(t, tt.want, in.Args)
		})
	}
}

func TestTool_Schema(t *testing.T) {
	tool := Tool()
	assert.Equal(t, domain.ToolName, tool.Name)
	for _, op := range Operations {
		assert.True(t, strings.Contains(tool.Description, op), "description must mention %s", op)
	}
	props := tool.Parameters["properties"].(map[string]any)
	assert.Contains(t, props, "tool_name")
	assert.Contains(t, props, "arguments")
}

func TestSystemPrompt_MentionsCeilingAndBoards(t *testing.T) {
	assert.Contains(t, SystemPrompt, "at most 10 items")
	assert.Contains(t, SystemPrompt, "5026840561")
	assert.Contains(t, SystemPrompt, "5026840578")
	assert.Contains(t, SystemPrompt, domain.ToolName)
}
