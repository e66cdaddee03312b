package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/skylark/pkg/domain"
)

// LoggingHooks writes one structured record per step and per tool return.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepFinish: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_finish",
				"turn_id", e.TurnID,
				"step", e.Step,
				"finish_reason", e.FinishReason,
				"text", e.Text,
				"tool_calls", len(e.ToolCalls),
				"tool_results", toolResultSummary(e.ToolResults),
			)
		},
		OnToolReturn: func(ctx context.Context, e *domain.ToolEvent) {
			logger.InfoContext(ctx, "tool_return",
				"tool_name", e.ToolName,
				"is_error", e.IsError,
				"duration", e.Duration,
			)
		},
	}
}

func toolResultSummary(results []domain.ToolResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Text)
	}
	return out
}
