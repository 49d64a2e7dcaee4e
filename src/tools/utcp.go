package tools

import (
	"context"
	"errors"
	"fmt"

	mission "github.com/Protocol-Lattice/go-mission"
	"github.com/universal-tool-calling-protocol/go-utcp"
)

// UTCPTool exposes one tool of a UTCP client through the mission
// registry, so agents can call remote UTCP providers like any other
// capability.
type UTCPTool struct {
	Client      utcp.UtcpClientInterface
	ToolName    string
	Description string
}

func NewUTCPTool(client utcp.UtcpClientInterface, toolName, description string) *UTCPTool {
	return &UTCPTool{Client: client, ToolName: toolName, Description: description}
}

func (t *UTCPTool) Spec() mission.ToolSpec {
	desc := t.Description
	if desc == "" {
		desc = fmt.Sprintf("Call the UTCP tool %s.", t.ToolName)
	}
	return mission.ToolSpec{
		Name:        t.ToolName,
		Description: desc,
	}
}

func (t *UTCPTool) Invoke(ctx context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	if t.Client == nil {
		return mission.ToolResponse{}, errors.New("utcp client is nil")
	}
	result, err := t.Client.CallTool(ctx, t.ToolName, req.Arguments)
	if err != nil {
		return mission.ToolResponse{}, fmt.Errorf("utcp call %s: %w", t.ToolName, err)
	}
	return mission.ToolResponse{
		Content:  fmt.Sprint(result),
		Metadata: map[string]string{"provider": "utcp"},
	}, nil
}
