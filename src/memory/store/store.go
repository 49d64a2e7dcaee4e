package store

import (
	"context"

	"github.com/Protocol-Lattice/go-mission/src/memory/model"
)

// VectorStore is the contract for retrieval backends consumed by the
// engine's tools.
type VectorStore interface {
	Store(ctx context.Context, missionID, content string, metadata map[string]any, embedding []float32) (int64, error)
	Search(ctx context.Context, queryEmbedding []float32, limit int) ([]model.Record, error)
	Close(ctx context.Context) error
}

// GraphStore is implemented by backends that maintain a knowledge graph
// over stored memories.
type GraphStore interface {
	Upsert(ctx context.Context, record model.Record) error
	Link(ctx context.Context, from, to int64, relation string) error
	Neighborhood(ctx context.Context, seedIDs []int64, hops, limit int) ([]model.Record, error)
}
