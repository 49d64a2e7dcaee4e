//go:build !fastembed

package embed

import (
	"context"
	"fmt"
)

// FastEmbedOptions configure the local ONNX embedding model. Model is
// the fastembed model identifier, e.g. "BAAI/bge-small-en-v1.5".
type FastEmbedOptions struct {
	Model     string
	CacheDir  string
	MaxLength int
	BatchSize int
}

// FastEmbedder requires the fastembed build tag; this stub keeps the
// default build free of the onnxruntime toolchain.
type FastEmbedder struct{}

func NewFastEmbedder(context.Context, *FastEmbedOptions) (Embedder, error) {
	return nil, fmt.Errorf("fastembed support not included; rebuild with -tags fastembed")
}

func (FastEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("fastembed support not included")
}

func (FastEmbedder) Close() error { return nil }
