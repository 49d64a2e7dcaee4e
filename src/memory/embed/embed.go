package embed

import (
	"context"
	"os"
	"strings"
)

// Embedder is a pluggable text-embedding provider.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DummyEmbedder produces a deterministic pseudo-embedding. It keeps the
// retrieval path exercisable without any external provider.
type DummyEmbedder struct{}

func (DummyEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return DummyEmbedding(text), nil
}

// DummyEmbedding folds the input bytes into a fixed 768-dim vector.
func DummyEmbedding(text string) []float32 {
	vec := make([]float32, 768)
	for i, ch := range []byte(text) {
		vec[i%768] += float32(ch) / 255.0
	}
	return vec
}

// AutoEmbedder chooses a provider from the environment:
// MISSION_EMBED_PROVIDER=voyage|fastembed|dummy (MISSION_EMBED_MODEL
// optionally overrides the model). Unset or unknown values fall back to
// the dummy embedder.
func AutoEmbedder(ctx context.Context) Embedder {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("MISSION_EMBED_PROVIDER")))
	model := strings.TrimSpace(os.Getenv("MISSION_EMBED_MODEL"))

	switch provider {
	case "voyage":
		if e, err := NewVoyageEmbedder(model); err == nil {
			return e
		}
	case "fastembed":
		if e, err := NewFastEmbedder(ctx, nil); err == nil {
			return e
		}
	}
	return DummyEmbedder{}
}
