package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	json "github.com/alpkeskin/gotoon"

	"github.com/Protocol-Lattice/go-mission/src/memory/model"
)

// QdrantStore implements VectorStore against Qdrant's HTTP API.
type QdrantStore struct {
	baseURL    string
	collection string
	client     *http.Client
	nextID     atomic.Int64
}

// NewQdrantStore ensures the collection exists and returns the store.
// vectorSize must match the embedder's output dimension.
func NewQdrantStore(ctx context.Context, baseURL, collection string, vectorSize int) (*QdrantStore, error) {
	qs := &QdrantStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
	qs.nextID.Store(time.Now().UnixNano())

	body := map[string]any{
		"vectors": map[string]any{"size": vectorSize, "distance": "Cosine"},
	}
	// PUT is idempotent; an already-exists response is fine.
	if err := qs.do(ctx, http.MethodPut, "/collections/"+collection, body, nil); err != nil &&
		!strings.Contains(err.Error(), "already exists") {
		return nil, fmt.Errorf("qdrant create collection: %w", err)
	}
	return qs, nil
}

func (qs *QdrantStore) Store(ctx context.Context, missionID, content string, metadata map[string]any, embedding []float32) (int64, error) {
	id := qs.nextID.Add(1)
	payload := map[string]any{
		"mission_id": missionID,
		"content":    content,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range metadata {
		payload[k] = v
	}

	body := map[string]any{
		"points": []map[string]any{{
			"id":      id,
			"vector":  embedding,
			"payload": payload,
		}},
	}
	if err := qs.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", qs.collection), body, nil); err != nil {
		return 0, fmt.Errorf("qdrant upsert: %w", err)
	}
	return id, nil
}

func (qs *QdrantStore) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]model.Record, error) {
	body := map[string]any{
		"vector":       queryEmbedding,
		"limit":        limit,
		"with_payload": true,
	}
	var result struct {
		Result []struct {
			ID      int64          `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := qs.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", qs.collection), body, &result); err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	records := make([]model.Record, 0, len(result.Result))
	for _, point := range result.Result {
		rec := model.Record{
			ID:       point.ID,
			Score:    point.Score,
			Metadata: point.Payload,
		}
		if v, ok := point.Payload["mission_id"].(string); ok {
			rec.MissionID = v
		}
		if v, ok := point.Payload["content"].(string); ok {
			rec.Content = v
		}
		records = append(records, rec)
	}
	return records, nil
}

func (qs *QdrantStore) Close(context.Context) error { return nil }

func (qs *QdrantStore) do(ctx context.Context, method, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, qs.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := qs.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

var _ VectorStore = (*QdrantStore)(nil)
