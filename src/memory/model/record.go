package model

import (
	"math"
	"time"
)

// Record is one retrievable memory: a piece of text scoped to the
// mission that produced it, with its embedding and backend-assigned id.
type Record struct {
	ID        int64
	MissionID string
	Content   string
	Metadata  map[string]any
	Embedding []float32
	Score     float64
	CreatedAt time.Time
}

// CosineSimilarity returns the cosine similarity of two vectors, or 0
// when either has no magnitude or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
