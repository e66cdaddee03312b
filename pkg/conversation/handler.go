// Package conversation runs one chat turn: it sanitizes the client history,
// hands it to the model with the business-data tool exposed, executes the
// tool calls the model asks for and streams everything back through a Sink.
//
// A turn is bounded to MaxSteps model calls. When the model answers without
// tool calls the turn finishes with reason "stop"; when the bound is reached
// it finishes with reason "tool-calls" and whatever text the model produced.
package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/skylark/pkg/adapters/llm"
	"github.com/aretw0/skylark/pkg/domain"
	"github.com/aretw0/skylark/pkg/monday"
	"github.com/aretw0/skylark/pkg/ports"
	"github.com/aretw0/skylark/pkg/registry"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
)

// Handler drives chat turns against a model and a tool registry.
type Handler struct {
	model        ports.ChatModel
	tools        *registry.Registry
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	maxSteps     int
	systemPrompt string
	callOptions  []llms.CallOption
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithLifecycleHooks registers step observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(h *Handler) {
		h.hooks = hooks
	}
}

// WithMaxSteps overrides domain.DefaultMaxSteps. Values below 1 are ignored.
func WithMaxSteps(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxSteps = n
		}
	}
}

// WithSystemPrompt replaces the default assistant policy.
func WithSystemPrompt(prompt string) Option {
	return func(h *Handler) {
		h.systemPrompt = prompt
	}
}

// WithCallOptions appends provider options (temperature, max tokens) to every model call.
func WithCallOptions(opts ...llms.CallOption) Option {
	return func(h *Handler) {
		h.callOptions = append(h.callOptions, opts...)
	}
}

// NewHandler creates a Handler.
func NewHandler(model ports.ChatModel, tools *registry.Registry, opts ...Option) *Handler {
	h := &Handler{
		model:        model,
		tools:        tools,
		logger:       slog.Default(),
		maxSteps:     domain.DefaultMaxSteps,
		systemPrompt: monday.SystemPrompt,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MaxSteps reports the configured step bound.
func (h *Handler) MaxSteps() int {
	return h.maxSteps
}

// Run executes one turn. Invalid history is reported as a wrapped
// domain.ErrInvalidHistory before anything is sent to sink. Model failures
// are streamed as an error chunk and also returned.
func (h *Handler) Run(ctx context.Context, history []domain.Message, sink Sink) error {
	clean, err := Sanitize(history)
	if err != nil {
		return err
	}
	if len(clean) == 0 {
		return fmt.Errorf("%w: no usable messages", domain.ErrInvalidHistory)
	}

	t := &turn{
		Handler:  h,
		id:       uuid.NewString(),
		sink:     sink,
		messages: Convert(h.systemPrompt, clean),
	}
	return t.run(ctx)
}

func (h *Handler) llmTools() []llms.Tool {
	defs := h.tools.Definitions()
	out := make([]llms.Tool, 0, len(defs))
	for _, d := range defs {
		out = append(out, llm.ToLLMTool(d))
	}
	return out
}

// turn holds the state of a single Run.
type turn struct {
	*Handler
	id       string
	sink     Sink
	messages []llms.MessageContent
	sendErr  error
}

func (t *turn) send(c Chunk) {
	if t.sendErr != nil {
		return
	}
	t.sendErr = t.sink.Send(c)
}

func (t *turn) run(ctx context.Context) error {
	t.send(Chunk{Type: ChunkStart, MessageID: t.id})
	tools := t.llmTools()

	for step := 1; step <= t.maxSteps; step++ {
		choice, err := t.step(ctx, tools)
		if err != nil {
			t.logger.Error("Model call failed", "turn_id", t.id, "step", step, "error", err)
			t.send(Chunk{Type: ChunkError, ErrorText: err.Error()})
			return err
		}
		if t.sendErr != nil {
			return t.sendErr
		}

		event := &domain.StepEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepFinish, TurnID: t.id},
			Step:         step,
			Text:         choice.Content,
			FinishReason: domain.FinishStop,
		}

		if len(choice.ToolCalls) == 0 {
			event.Final = true
			t.send(Chunk{Type: ChunkFinishStep})
			t.stepFinished(ctx, event)
			t.send(Chunk{Type: ChunkFinish})
			return t.sendErr
		}

		event.FinishReason = domain.FinishToolCalls
		event.Final = step == t.maxSteps
		event.ToolCalls, event.ToolResults = t.executeTools(ctx, choice)
		t.send(Chunk{Type: ChunkFinishStep})
		t.stepFinished(ctx, event)
		if t.sendErr != nil {
			return t.sendErr
		}
	}

	t.logger.Warn("Step limit reached", "turn_id", t.id, "max_steps", t.maxSteps)
	t.send(Chunk{Type: ChunkFinish})
	return t.sendErr
}

func (t *turn) stepFinished(ctx context.Context, event *domain.StepEvent) {
	t.logger.Debug("Step finished", "turn_id", t.id, "step", event.Step, "finish_reason", event.FinishReason)
	if t.hooks.OnStepFinish != nil {
		t.hooks.OnStepFinish(ctx, event)
	}
}

// step performs one model call, streaming its text as it arrives.
func (t *turn) step(ctx context.Context, tools []llms.Tool) (*llms.ContentChoice, error) {
	t.send(Chunk{Type: ChunkStartStep})

	textID := uuid.NewString()
	started := false
	delta := func(text string) {
		if !started {
			t.send(Chunk{Type: ChunkTextStart, ID: textID})
			started = true
		}
		t.send(Chunk{Type: ChunkTextDelta, ID: textID, Delta: text})
	}

	opts := make([]llms.CallOption, 0, len(t.callOptions)+2)
	opts = append(opts, t.callOptions...)
	opts = append(opts,
		llms.WithTools(tools),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 || isToolCallChunk(chunk) {
				return nil
			}
			delta(string(chunk))
			return t.sendErr
		}),
	)

	resp, err := t.model.GenerateContent(ctx, t.messages, opts...)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, domain.ErrEmptyResponse
	}
	choice := resp.Choices[0]

	if !started && choice.Content != "" {
		delta(choice.Content)
	}
	if started {
		t.send(Chunk{Type: ChunkTextEnd, ID: textID})
	}
	return choice, nil
}

// executeTools runs the requested calls sequentially and appends them, with
// their results, to the model context.
func (t *turn) executeTools(ctx context.Context, choice *llms.ContentChoice) ([]domain.ToolCall, []domain.ToolResult) {
	ai := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	if choice.Content != "" {
		ai.Parts = append(ai.Parts, llms.TextPart(choice.Content))
	}

	calls := make([]domain.ToolCall, 0, len(choice.ToolCalls))
	results := make([]domain.ToolResult, 0, len(choice.ToolCalls))
	var responses []llms.MessageContent

	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		id := tc.ID
		if id == "" {
			id = uuid.NewString()
		}
		name, rawArgs := tc.FunctionCall.Name, tc.FunctionCall.Arguments
		input := decodeArguments(rawArgs)

		ai.Parts = append(ai.Parts, llms.ToolCall{
			ID:           id,
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: name, Arguments: rawArgs},
		})
		t.send(Chunk{Type: ChunkToolInput, ToolCallID: id, ToolName: name, Input: input})

		res, err := t.tools.Execute(ctx, name, id, rawArgs)
		if err != nil {
			t.logger.Warn("Model requested unknown tool", "turn_id", t.id, "tool", name)
			res = domain.ToolResult{ID: id, Name: name, IsError: true, Error: err.Error(), Text: "Error: " + err.Error()}
		}

		if res.IsError {
			t.send(Chunk{Type: ChunkToolError, ToolCallID: id, ErrorText: res.Text})
		} else {
			output := res.Output
			if output == nil {
				output = res.Text
			}
			t.send(Chunk{Type: ChunkToolOutput, ToolCallID: id, Output: output})
		}

		calls = append(calls, domain.ToolCall{ID: id, Name: name, Args: asMap(input)})
		results = append(results, res)
		responses = append(responses, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{
				ToolCallID: id,
				Name:       name,
				Content:    res.Text,
			}},
		})
	}

	t.messages = append(t.messages, ai)
	t.messages = append(t.messages, responses...)
	return calls, results
}

// isToolCallChunk reports whether a streamed chunk is the provider's JSON
// rendering of tool calls rather than assistant text.
func isToolCallChunk(chunk []byte) bool {
	trimmed := bytes.TrimSpace(chunk)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return false
	}
	var calls []struct {
		Type     string          `json:"type"`
		Function json.RawMessage `json:"function"`
	}
	if err := json.Unmarshal(trimmed, &calls); err != nil || len(calls) == 0 {
		return false
	}
	for _, c := range calls {
		if len(c.Function) == 0 {
			return false
		}
	}
	return true
}

func decodeArguments(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
