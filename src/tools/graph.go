package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	mission "github.com/Protocol-Lattice/go-mission"
	"github.com/Protocol-Lattice/go-mission/src/memory/store"
)

// GraphTool walks the knowledge graph around one or more memory ids.
type GraphTool struct {
	Graph store.GraphStore
	Hops  int
	Limit int
}

func NewGraphTool(g store.GraphStore) *GraphTool {
	return &GraphTool{Graph: g, Hops: 2, Limit: 10}
}

func (t *GraphTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "graph",
		Description: "Explore memories connected to the given memory ids in the knowledge graph.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{
					"type":        "string",
					"description": "Comma-separated memory ids to start from.",
				},
			},
			"required": []string{"input"},
		},
	}
}

func (t *GraphTool) Invoke(ctx context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	seeds, err := parseSeedIDs(req.Arguments)
	if err != nil {
		return mission.ToolResponse{}, err
	}

	records, err := t.Graph.Neighborhood(ctx, seeds, t.Hops, t.Limit)
	if err != nil {
		return mission.ToolResponse{}, fmt.Errorf("graph neighborhood: %w", err)
	}
	if len(records) == 0 {
		return mission.ToolResponse{Content: "no connected memories"}, nil
	}

	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("#%d %s\n", rec.ID, strings.TrimSpace(rec.Content)))
	}
	return mission.ToolResponse{Content: strings.TrimSpace(sb.String())}, nil
}

func parseSeedIDs(args map[string]any) ([]int64, error) {
	if items, ok := args["items"].([]any); ok {
		var seeds []int64
		for _, item := range items {
			switch v := item.(type) {
			case float64:
				seeds = append(seeds, int64(v))
			case string:
				id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid memory id %q", v)
				}
				seeds = append(seeds, id)
			}
		}
		if len(seeds) > 0 {
			return seeds, nil
		}
	}

	input := argumentText(args, "input", "ids")
	if input == "" {
		return nil, errors.New("missing 'input' argument with memory ids")
	}
	var seeds []int64
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid memory id %q", part)
		}
		seeds = append(seeds, id)
	}
	if len(seeds) == 0 {
		return nil, errors.New("no memory ids given")
	}
	return seeds, nil
}
