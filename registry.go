package mission

import (
	"strings"
	"sync"
)

// StaticRegistry is the default in-memory Registry implementation.
// Registration is last-wins: re-registering a name replaces the previous
// tool while keeping its original position in the advertisement order.
type StaticRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	specs map[string]ToolSpec
	order []string
}

// NewStaticRegistry constructs a registry seeded with the provided tools.
func NewStaticRegistry(tools ...Tool) *StaticRegistry {
	r := &StaticRegistry{
		tools: make(map[string]Tool),
		specs: make(map[string]ToolSpec),
	}
	for _, tool := range tools {
		r.Register(tool)
	}
	return r
}

// Register stores a tool under its lower-cased name. Nil tools and tools
// with empty names are ignored.
func (r *StaticRegistry) Register(tool Tool) {
	if tool == nil {
		return
	}
	spec := tool.Spec()
	key := strings.ToLower(strings.TrimSpace(spec.Name))
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[key]; !exists {
		r.order = append(r.order, key)
	}
	r.tools[key] = tool
	r.specs[key] = spec
}

// Lookup returns the tool and its specification if present.
func (r *StaticRegistry) Lookup(name string) (Tool, ToolSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	tool, ok := r.tools[key]
	if !ok {
		return nil, ToolSpec{}, false
	}
	return tool, r.specs[key], true
}

// Specs returns a snapshot of the tool specifications in registration order.
func (r *StaticRegistry) Specs() []ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]ToolSpec, 0, len(r.order))
	for _, key := range r.order {
		specs = append(specs, r.specs[key])
	}
	return specs
}

// Tools returns the registered tools in registration order.
func (r *StaticRegistry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, key := range r.order {
		tools = append(tools, r.tools[key])
	}
	return tools
}
