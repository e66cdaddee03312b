package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/skylark/pkg/domain"
)

// ToolFunction executes one model tool call. rawInput is the JSON argument
// string produced by the model. Failures are reported inside the ToolResult.
type ToolFunction func(ctx context.Context, callID, rawInput string) domain.ToolResult

type entry struct {
	def domain.Tool
	fn  ToolFunction
}

// Registry manages the tools exposed to the model.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]entry),
	}
}

// Register adds a tool to the registry.
// If a tool with the same name exists, it is overwritten.
func (r *Registry) Register(def domain.Tool, fn ToolFunction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[def.Name] = entry{def: def, fn: fn}
}

// Definitions returns the registered tool definitions sorted by name.
func (r *Registry) Definitions() []domain.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]domain.Tool, 0, len(r.tools))
	for _, e := range r.tools {
		defs = append(defs, e.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Execute looks up a tool by name and executes it.
// Returns domain.ErrUnknownTool if the tool is not found.
func (r *Registry) Execute(ctx context.Context, name, callID, rawInput string) (domain.ToolResult, error) {
	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return domain.ToolResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}

	return e.fn(ctx, callID, rawInput), nil
}
