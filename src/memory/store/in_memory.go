package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Protocol-Lattice/go-mission/src/memory/model"
)

// InMemoryStore keeps records in process memory. It backs tests and
// deployments that do not need durable retrieval.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []model.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Store(_ context.Context, missionID, content string, metadata map[string]any, embedding []float32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.records = append(s.records, model.Record{
		ID:        s.nextID,
		MissionID: missionID,
		Content:   content,
		Metadata:  metadata,
		Embedding: append([]float32(nil), embedding...),
		CreatedAt: time.Now().UTC(),
	})
	return s.nextID, nil
}

func (s *InMemoryStore) Search(_ context.Context, queryEmbedding []float32, limit int) ([]model.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	scored := make([]model.Record, len(s.records))
	copy(scored, s.records)
	s.mu.RUnlock()

	for i := range scored {
		scored[i].Score = model.CosineSimilarity(queryEmbedding, scored[i].Embedding)
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s *InMemoryStore) Close(context.Context) error { return nil }

var _ VectorStore = (*InMemoryStore)(nil)
