package tools

import (
	"context"
	"time"

	mission "github.com/Protocol-Lattice/go-mission"
)

// EchoTool returns its input unchanged. Useful for wiring checks and
// demos.
type EchoTool struct{}

func (EchoTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "echo",
		Description: "Echo the input back unchanged.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{"type": "string"},
			},
			"required": []string{"input"},
		},
	}
}

func (EchoTool) Invoke(_ context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	input, _ := req.Arguments["input"].(string)
	return mission.ToolResponse{Content: input}, nil
}

// ClockTool reports the current UTC time.
type ClockTool struct{}

func (ClockTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "clock",
		Description: "Report the current UTC time in RFC 3339 format.",
	}
}

func (ClockTool) Invoke(context.Context, mission.ToolRequest) (mission.ToolResponse, error) {
	return mission.ToolResponse{Content: time.Now().UTC().Format(time.RFC3339)}, nil
}
