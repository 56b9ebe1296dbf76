package tool

import (
	"sync"

	"github.com/hupe1980/agendamesh/model"
)

// Registry is the set of tools currently callable by the model. It is safe
// for concurrent reads and supports wholesale replacement between turns, so
// an externally managed tool list can be reloaded without restart.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry constructs a registry pre-populated with the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		r.register(t)
	}
	return r
}

// Register adds or replaces a single tool.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(t)
}

func (r *Registry) register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Replace swaps the entire tool set. Used when tool definitions are reloaded
// between turns.
func (r *Registry) Replace(tools []Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = make(map[string]Tool, len(tools))
	r.order = r.order[:0]
	for _, t := range tools {
		r.register(t)
	}
}

// Get resolves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Definitions yields the tool schema list sent to the model, in registration
// order so prompts stay deterministic.
func (r *Registry) Definitions() []model.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]model.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}
