//go:build fastembed

package embed

import (
	"context"
	"runtime"

	fastembed "github.com/anush008/fastembed-go"
)

// FastEmbedOptions configure the local ONNX embedding model. Model is
// the fastembed model identifier, e.g. "BAAI/bge-small-en-v1.5".
type FastEmbedOptions struct {
	Model     string
	CacheDir  string
	MaxLength int
	BatchSize int
}

// FastEmbedder embeds text locally via fastembed's ONNX runtime.
type FastEmbedder struct {
	m  *fastembed.FlagEmbedding
	bs int
}

func NewFastEmbedder(_ context.Context, opt *FastEmbedOptions) (Embedder, error) {
	var init *fastembed.InitOptions
	if opt != nil {
		init = &fastembed.InitOptions{
			Model:     fastembed.EmbeddingModel(opt.Model),
			CacheDir:  opt.CacheDir,
			MaxLength: opt.MaxLength,
		}
	}
	m, err := fastembed.NewFlagEmbedding(init)
	if err != nil {
		return nil, err
	}

	bs := 64
	if opt != nil && opt.BatchSize > 0 {
		bs = opt.BatchSize
	}
	if max := 4 * runtime.GOMAXPROCS(0); bs > max {
		bs = max
	}
	return &FastEmbedder{m: m, bs: bs}, nil
}

func (e *FastEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return e.m.QueryEmbed(text)
}

func (e *FastEmbedder) Close() error {
	if e.m != nil {
		e.m.Destroy()
	}
	return nil
}
