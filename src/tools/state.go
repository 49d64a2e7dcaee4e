package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mission "github.com/Protocol-Lattice/go-mission"
)

// StateWriteTool stores a value in the mission's shared state so other
// agents can pick it up.
type StateWriteTool struct{}

func (StateWriteTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "state_write",
		Description: "Store a value under a key in the shared mission state.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key":   map[string]any{"type": "string"},
				"value": map[string]any{"description": "Value to store; any JSON type."},
			},
			"required": []string{"key", "value"},
		},
	}
}

func (StateWriteTool) Invoke(_ context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	if req.State == nil {
		return mission.ToolResponse{}, errors.New("no shared state attached to this mission")
	}
	key, _ := req.Arguments["key"].(string)
	key = strings.TrimSpace(key)
	if key == "" {
		return mission.ToolResponse{}, errors.New("missing 'key' argument")
	}
	value, ok := req.Arguments["value"]
	if !ok {
		return mission.ToolResponse{}, errors.New("missing 'value' argument")
	}

	req.State.Set(key, value)
	return mission.ToolResponse{
		Content:  fmt.Sprintf("stored %q", key),
		Metadata: map[string]string{"key": key},
	}, nil
}

// StateReadTool reads a value from the mission's shared state. Called
// without a key it lists the stored keys.
type StateReadTool struct{}

func (StateReadTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "state_read",
		Description: "Read a value by key from the shared mission state; omit the key to list stored keys.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key": map[string]any{"type": "string"},
			},
		},
	}
}

func (StateReadTool) Invoke(_ context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	if req.State == nil {
		return mission.ToolResponse{}, errors.New("no shared state attached to this mission")
	}

	key, _ := req.Arguments["key"].(string)
	key = strings.TrimSpace(key)
	if key == "" {
		if input, _ := req.Arguments["input"].(string); strings.TrimSpace(input) != "" {
			key = strings.TrimSpace(input)
		}
	}
	if key == "" {
		keys := req.State.Keys()
		if len(keys) == 0 {
			return mission.ToolResponse{Content: "shared state is empty"}, nil
		}
		return mission.ToolResponse{Content: "stored keys: " + strings.Join(keys, ", ")}, nil
	}

	value, ok := req.State.Render(key)
	if !ok {
		return mission.ToolResponse{}, fmt.Errorf("key %q not found in shared state", key)
	}
	return mission.ToolResponse{
		Content:  value,
		Metadata: map[string]string{"key": key},
	}, nil
}
