package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mission "github.com/Protocol-Lattice/go-mission"
	"github.com/Protocol-Lattice/go-mission/src/memory/embed"
	"github.com/Protocol-Lattice/go-mission/src/memory/store"
)

// RetrieveTool searches the long-term memory store for text similar to
// the query.
type RetrieveTool struct {
	Store    store.VectorStore
	Embedder embed.Embedder
	Limit    int
}

func NewRetrieveTool(vs store.VectorStore, e embed.Embedder, limit int) *RetrieveTool {
	if limit <= 0 {
		limit = 5
	}
	return &RetrieveTool{Store: vs, Embedder: e, Limit: limit}
}

func (t *RetrieveTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "retrieve",
		Description: "Search stored memories for content similar to a query.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"input"},
		},
	}
}

func (t *RetrieveTool) Invoke(ctx context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	query := argumentText(req.Arguments, "input", "query")
	if query == "" {
		return mission.ToolResponse{}, errors.New("missing 'input' argument")
	}

	vector, err := t.Embedder.Embed(ctx, query)
	if err != nil {
		return mission.ToolResponse{}, fmt.Errorf("embed query: %w", err)
	}
	records, err := t.Store.Search(ctx, vector, t.Limit)
	if err != nil {
		return mission.ToolResponse{}, fmt.Errorf("search memories: %w", err)
	}
	if len(records) == 0 {
		return mission.ToolResponse{Content: "no matching memories"}, nil
	}

	var sb strings.Builder
	for i, rec := range records {
		sb.WriteString(fmt.Sprintf("%d. (%.3f) %s\n", i+1, rec.Score, strings.TrimSpace(rec.Content)))
	}
	return mission.ToolResponse{Content: strings.TrimSpace(sb.String())}, nil
}

// MemorizeTool writes a piece of text into the long-term memory store
// under the current mission.
type MemorizeTool struct {
	Store    store.VectorStore
	Embedder embed.Embedder
}

func NewMemorizeTool(vs store.VectorStore, e embed.Embedder) *MemorizeTool {
	return &MemorizeTool{Store: vs, Embedder: e}
}

func (t *MemorizeTool) Spec() mission.ToolSpec {
	return mission.ToolSpec{
		Name:        "memorize",
		Description: "Persist a piece of text into long-term memory for later retrieval.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{
					"type":        "string",
					"description": "The text to remember.",
				},
			},
			"required": []string{"input"},
		},
	}
}

func (t *MemorizeTool) Invoke(ctx context.Context, req mission.ToolRequest) (mission.ToolResponse, error) {
	content := argumentText(req.Arguments, "input", "content")
	if content == "" {
		return mission.ToolResponse{}, errors.New("missing 'input' argument")
	}

	vector, err := t.Embedder.Embed(ctx, content)
	if err != nil {
		return mission.ToolResponse{}, fmt.Errorf("embed content: %w", err)
	}
	id, err := t.Store.Store(ctx, req.MissionID, content, nil, vector)
	if err != nil {
		return mission.ToolResponse{}, fmt.Errorf("store memory: %w", err)
	}
	return mission.ToolResponse{
		Content:  fmt.Sprintf("memorized as record %d", id),
		Metadata: map[string]string{"record_id": fmt.Sprint(id)},
	}, nil
}

func argumentText(args map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := args[key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
