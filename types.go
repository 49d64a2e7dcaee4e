package mission

import "context"

// ToolSpec describes how a tool is presented to the model.
type ToolSpec struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema map[string]any   `json:"input_schema,omitempty"`
	Examples    []map[string]any `json:"examples,omitempty"`

	// Terminal marks the tool whose successful invocation ends the agent
	// loop and yields the mission result.
	Terminal bool `json:"terminal,omitempty"`
}

// ToolRequest captures an invocation request for a tool.
type ToolRequest struct {
	MissionID string
	Arguments map[string]any

	// State is the mission-scoped shared store. Tools use it to pass data
	// between agents without direct coupling.
	State *SharedState
}

// ToolResponse is the structured response returned by a tool.
type ToolResponse struct {
	Content  string
	Metadata map[string]string
}

// Tool exposes structured metadata and an invocation handler.
type Tool interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}

// Registry maintains a named set of tools and provides lookup by name.
type Registry interface {
	Register(tool Tool)
	Lookup(name string) (Tool, ToolSpec, bool)
	Specs() []ToolSpec
	Tools() []Tool
}

// Specialist is an agent that can be delegated a task and run to
// completion inline.
type Specialist interface {
	Name() string
	Description() string
	Run(ctx context.Context, task string) (string, error)
}
