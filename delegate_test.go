package mission

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubSpecialist struct {
	name   string
	desc   string
	result string
	err    error
	tasks  []string
}

func (s *stubSpecialist) Name() string        { return s.name }
func (s *stubSpecialist) Description() string { return s.desc }

func (s *stubSpecialist) Run(_ context.Context, task string) (string, error) {
	s.tasks = append(s.tasks, task)
	return s.result, s.err
}

func TestDelegateToolRunsSpecialist(t *testing.T) {
	sa := &stubSpecialist{name: "Researcher", desc: "finds things", result: "three sources found"}
	dt := NewDelegateTool(sa)

	resp, err := dt.Invoke(context.Background(), ToolRequest{Arguments: map[string]any{
		"specialist": "researcher",
		"input":      "find sources on topic X",
	}})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if resp.Content != "three sources found" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
	if len(sa.tasks) != 1 || sa.tasks[0] != "find sources on topic X" {
		t.Fatalf("specialist saw the wrong task: %v", sa.tasks)
	}
	if resp.Metadata["specialist"] != "Researcher" {
		t.Fatalf("unexpected metadata: %v", resp.Metadata)
	}
}

func TestDelegateToolUnknownSpecialist(t *testing.T) {
	dt := NewDelegateTool(&stubSpecialist{name: "analyst"})
	_, err := dt.Invoke(context.Background(), ToolRequest{Arguments: map[string]any{
		"specialist": "poet",
		"input":      "write a haiku",
	}})
	if err == nil || !strings.Contains(err.Error(), "unknown specialist") {
		t.Fatalf("expected an unknown-specialist error, got %v", err)
	}
}

func TestDelegateToolRequiresArguments(t *testing.T) {
	dt := NewDelegateTool(&stubSpecialist{name: "analyst"})

	if _, err := dt.Invoke(context.Background(), ToolRequest{Arguments: map[string]any{"input": "task"}}); err == nil {
		t.Fatalf("expected an error without a specialist name")
	}
	if _, err := dt.Invoke(context.Background(), ToolRequest{Arguments: map[string]any{"specialist": "analyst"}}); err == nil {
		t.Fatalf("expected an error without a task")
	}
}

func TestDelegateToolWrapsSpecialistError(t *testing.T) {
	boom := errors.New("specialist exploded")
	dt := NewDelegateTool(&stubSpecialist{name: "analyst", err: boom})

	_, err := dt.Invoke(context.Background(), ToolRequest{Arguments: map[string]any{
		"specialist": "analyst",
		"input":      "analyse this",
	}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the specialist error to be wrapped, got %v", err)
	}
}

func TestDelegateToolRosterInSpec(t *testing.T) {
	dt := NewDelegateTool(
		&stubSpecialist{name: "researcher", desc: "finds things"},
		&stubSpecialist{name: "analyst", desc: "reasons about them"},
	)
	desc := dt.Spec().Description
	if !strings.Contains(desc, "researcher (finds things)") || !strings.Contains(desc, "analyst (reasons about them)") {
		t.Fatalf("roster missing from description: %q", desc)
	}
}
