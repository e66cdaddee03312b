package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/skylark/internal/presentation/tui"
	"github.com/aretw0/skylark/pkg/conversation"
	"github.com/aretw0/skylark/pkg/domain"
)

// AskOptions controls how a one-shot answer is printed.
type AskOptions struct {
	// Render formats the answer as terminal markdown.
	Render bool
	Width  int
	// ShowTools prints one status line per tool call.
	ShowTools bool
}

// Ask runs a single-question turn and writes the answer to out.
func Ask(ctx context.Context, turns *conversation.Handler, question string, out io.Writer, opts AskOptions) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question is empty")
	}

	var tr conversation.Transcript
	sink := conversation.Sink(&tr)
	if opts.ShowTools {
		sink = conversation.SinkFunc(func(c conversation.Chunk) error {
			printToolStatus(out, c)
			return tr.Send(c)
		})
	}

	err := turns.Run(ctx, []domain.Message{domain.TextMessage(domain.RoleUser, question)}, sink)
	if err != nil {
		return err
	}

	answer := strings.TrimSpace(tr.Text())
	if answer == "" {
		answer = "_No answer was produced._"
	}
	if opts.Render {
		if rendered, err := tui.NewRenderer(opts.Width)(answer); err == nil {
			answer = rendered
		}
	}
	_, err = fmt.Fprintln(out, answer)
	return err
}

func printToolStatus(out io.Writer, c conversation.Chunk) {
	switch c.Type {
	case conversation.ChunkToolInput:
		op := ""
		if in, ok := c.Input.(map[string]any); ok {
			op, _ = in["tool_name"].(string)
		}
		fmt.Fprintf(out, "… Executing Monday.com query %s\n", op)
	case conversation.ChunkToolOutput:
		fmt.Fprintln(out, "✓ Data Secured")
	case conversation.ChunkToolError:
		fmt.Fprintf(out, "✗ Execution Failed: %s\n", c.ErrorText)
	}
}
