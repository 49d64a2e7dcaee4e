package models

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDummyLLMEchoesLastLine(t *testing.T) {
	d := NewDummyLLM("")

	out, err := d.Generate(context.Background(), "[system] be helpful\n\n[user] what is up?\n")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	text, _ := out.(string)
	if !strings.HasPrefix(text, "Dummy response:") {
		t.Fatalf("missing default prefix: %q", text)
	}
	if !strings.Contains(text, "[user] what is up?") {
		t.Fatalf("expected the last non-empty line, got %q", text)
	}

	out, _ = d.Generate(context.Background(), "\n\n  \n")
	if text, _ := out.(string); !strings.Contains(text, "<empty prompt>") {
		t.Fatalf("unexpected output for an empty prompt: %q", text)
	}
}

type countingAgent struct {
	calls int
	err   error
}

func (a *countingAgent) Generate(context.Context, string) (any, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return "generated", nil
}

func TestCachedLLMMemoisesGenerate(t *testing.T) {
	inner := &countingAgent{}
	c := NewCachedLLM(inner, 8, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		out, err := c.Generate(ctx, "same prompt")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if out != "generated" {
			t.Fatalf("unexpected output: %v", out)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", inner.calls)
	}

	if _, err := c.Generate(ctx, "different prompt"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected a miss for a new prompt, got %d calls", inner.calls)
	}
}

func TestCachedLLMDoesNotCacheErrors(t *testing.T) {
	inner := &countingAgent{err: errors.New("upstream down")}
	c := NewCachedLLM(inner, 8, time.Minute)

	ctx := context.Background()
	if _, err := c.Generate(ctx, "prompt"); err == nil {
		t.Fatalf("expected the upstream error")
	}
	if _, err := c.Generate(ctx, "prompt"); err == nil {
		t.Fatalf("expected the error again, not a cached value")
	}
	if inner.calls != 2 {
		t.Fatalf("errors must not be cached, got %d calls", inner.calls)
	}
}
