package mission

import (
	"context"
	"fmt"
	"testing"
)

// stubTool is a minimal Tool for registry and agent tests. Its Invoke
// records arguments and returns a canned reply.
type stubTool struct {
	name     string
	terminal bool
	reply    string
	err      error
	calls    int
	lastArgs map[string]any
}

func (s *stubTool) Spec() ToolSpec {
	return ToolSpec{
		Name:        s.name,
		Description: fmt.Sprintf("stub tool %s", s.name),
		Terminal:    s.terminal,
	}
}

func (s *stubTool) Invoke(_ context.Context, req ToolRequest) (ToolResponse, error) {
	s.calls++
	s.lastArgs = req.Arguments
	if s.err != nil {
		return ToolResponse{}, s.err
	}
	if s.reply == "" {
		input, _ := req.Arguments["input"].(string)
		return ToolResponse{Content: input}, nil
	}
	return ToolResponse{Content: s.reply}, nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewStaticRegistry(&stubTool{name: "echo"}, &stubTool{name: "finish", terminal: true})

	tool, spec, ok := reg.Lookup("echo")
	if !ok || tool == nil {
		t.Fatalf("expected echo to be registered")
	}
	if spec.Terminal {
		t.Fatalf("echo must not be terminal")
	}

	_, spec, ok = reg.Lookup("FINISH")
	if !ok {
		t.Fatalf("lookup must be case-insensitive")
	}
	if !spec.Terminal {
		t.Fatalf("finish must be terminal")
	}

	if _, _, ok := reg.Lookup("missing"); ok {
		t.Fatalf("did not expect a hit for an unregistered name")
	}
}

func TestRegistryLastWins(t *testing.T) {
	first := &stubTool{name: "echo", reply: "first"}
	second := &stubTool{name: "echo", reply: "second"}

	reg := NewStaticRegistry(&stubTool{name: "clock"}, first)
	reg.Register(second)

	tool, _, ok := reg.Lookup("echo")
	if !ok {
		t.Fatalf("expected echo to be registered")
	}
	resp, err := tool.Invoke(context.Background(), ToolRequest{})
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if resp.Content != "second" {
		t.Fatalf("expected the replacement tool, got %q", resp.Content)
	}

	specs := reg.Specs()
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Name != "clock" || specs[1].Name != "echo" {
		t.Fatalf("replacement must keep its original position, got %v", specs)
	}
}

func TestRegistryIgnoresInvalidTools(t *testing.T) {
	reg := NewStaticRegistry()
	reg.Register(nil)
	reg.Register(&stubTool{name: "  "})
	if got := len(reg.Specs()); got != 0 {
		t.Fatalf("expected an empty registry, got %d specs", got)
	}
}
