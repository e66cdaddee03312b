package ports

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// ChatModel is the subset of llms.Model used by the turn handler.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}
