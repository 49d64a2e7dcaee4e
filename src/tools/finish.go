package tools

import (
	"context"
	"strings"

	mission "github.com/Protocol-Lattice/go-mission"
)

// FinishTool is the terminal tool: its result becomes the mission's
// final answer and ends the agent loop immediately.
type FinishTool struct {
	// Result, when set, overrides whatever the model passed in.
	Result string
}

func NewFinishTool() *FinishTool { return &FinishTool{} }

func (t *FinishTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "finish",
		Description: "Deliver the final answer and end the mission.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{
					"type":        "string",
					"description": "The final answer.",
				},
			},
			"required": []string{"input"},
		},
		Terminal: true,
	}
}

func (t *FinishTool) Invoke(_ context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	if t.Result != "" {
		return mission.ToolResponse{Content: t.Result}, nil
	}
	answer, _ := req.Arguments["input"].(string)
	if strings.TrimSpace(answer) == "" {
		answer, _ = req.Arguments["result"].(string)
	}
	return mission.ToolResponse{Content: strings.TrimSpace(answer)}, nil
}
