package mission

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// DelegateTool hands a task to a named specialist and runs it to
// completion inline. The orchestrator blocks for the full duration of
// the delegated run; delegation never spawns a new goroutine.
type DelegateTool struct {
	mu          sync.RWMutex
	specialists map[string]Specialist
	order       []string
}

// NewDelegateTool builds the delegation tool from the provided
// specialists.
func NewDelegateTool(specialists ...Specialist) *DelegateTool {
	t := &DelegateTool{specialists: make(map[string]Specialist)}
	for _, sa := range specialists {
		t.Add(sa)
	}
	return t
}

// Add registers a specialist, replacing any previous one of the same name.
func (t *DelegateTool) Add(sa Specialist) {
	if sa == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(sa.Name()))
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.specialists[key]; !exists {
		t.order = append(t.order, key)
	}
	t.specialists[key] = sa
}

func (t *DelegateTool) Spec() ToolSpec {
	return ToolSpec{
		Name:        "delegate",
		Description: "Delegate a task to a specialist agent: " + t.roster(),
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"specialist": map[string]any{
					"type":        "string",
					"description": "Name of the specialist to run.",
				},
				"input": map[string]any{
					"type":        "string",
					"description": "The task for the specialist.",
				},
			},
			"required": []string{"specialist", "input"},
		},
	}
}

func (t *DelegateTool) Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error) {
	name, _ := req.Arguments["specialist"].(string)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ToolResponse{}, fmt.Errorf("missing 'specialist' argument")
	}

	task, _ := req.Arguments["input"].(string)
	if strings.TrimSpace(task) == "" {
		return ToolResponse{}, fmt.Errorf("missing 'input' argument")
	}

	t.mu.RLock()
	sa, ok := t.specialists[name]
	t.mu.RUnlock()
	if !ok {
		return ToolResponse{}, fmt.Errorf("unknown specialist: %s", name)
	}

	result, err := sa.Run(ctx, task)
	if err != nil {
		return ToolResponse{}, fmt.Errorf("specialist %s: %w", sa.Name(), err)
	}
	return ToolResponse{
		Content:  result,
		Metadata: map[string]string{"specialist": sa.Name()},
	}, nil
}

func (t *DelegateTool) roster() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	parts := make([]string, 0, len(t.order))
	for _, key := range t.order {
		sa := t.specialists[key]
		parts = append(parts, fmt.Sprintf("%s (%s)", sa.Name(), sa.Description()))
	}
	if len(parts) == 0 {
		return "none registered"
	}
	return strings.Join(parts, ", ")
}
