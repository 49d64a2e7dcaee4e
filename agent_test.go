package mission

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// scriptedModel replays a fixed sequence of completions. Once the
// script is exhausted it repeats the final entry.
type scriptedModel struct {
	mu        sync.Mutex
	responses []string
	calls     int
	prompts   []string
}

func (m *scriptedModel) Generate(_ context.Context, prompt string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	idx := m.calls
	m.calls++
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	if idx < 0 {
		return "", nil
	}
	return m.responses[idx], nil
}

type failingModel struct{ err error }

func (m *failingModel) Generate(context.Context, string) (any, error) {
	return nil, m.err
}

func newTestAgent(t *testing.T, model *scriptedModel, tools ...Tool) *Agent {
	t.Helper()
	agent, err := NewAgent(AgentOptions{
		Name:     "tester",
		Role:     RoleOrchestrator,
		Model:    model,
		Registry: NewStaticRegistry(tools...),
		State:    NewSharedState(),
	})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	return agent
}

func TestAgentFinishEndsLoop(t *testing.T) {
	finish := &stubTool{name: "finish", terminal: true, reply: "the answer is 4"}
	model := &scriptedModel{responses: []string{
		`tool:finish {"input": "the answer is 4"}`,
	}}

	agent := newTestAgent(t, model, finish)
	result, err := agent.Run(context.Background(), "what is 2+2?")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != "the answer is 4" {
		t.Fatalf("unexpected result: %q", result)
	}
	if model.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", model.calls)
	}
}

func TestAgentFeedsToolResultBack(t *testing.T) {
	calc := &stubTool{name: "calculator", reply: "42"}
	finish := &stubTool{name: "finish", terminal: true, reply: "done: 42"}
	model := &scriptedModel{responses: []string{
		`tool:calculator {"expression": "6*7"}`,
		`tool:finish {"input": "done: 42"}`,
	}}

	agent := newTestAgent(t, model, calc, finish)
	result, err := agent.Run(context.Background(), "multiply 6 by 7")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != "done: 42" {
		t.Fatalf("unexpected result: %q", result)
	}
	if calc.calls != 1 {
		t.Fatalf("expected 1 calculator call, got %d", calc.calls)
	}
	if calc.lastArgs["expression"] != "6*7" {
		t.Fatalf("unexpected calculator arguments: %#v", calc.lastArgs)
	}

	second := model.prompts[1]
	if !strings.Contains(second, "Tool calculator returned: 42") {
		t.Fatalf("tool result was not fed back into the transcript:\n%s", second)
	}
}

func TestAgentRecoversFromUnknownTool(t *testing.T) {
	finish := &stubTool{name: "finish", terminal: true, reply: "recovered"}
	model := &scriptedModel{responses: []string{
		`tool:telepathy {"input": "guess"}`,
		`tool:finish {"input": "recovered"}`,
	}}

	agent := newTestAgent(t, model, finish)
	result, err := agent.Run(context.Background(), "try something")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != "recovered" {
		t.Fatalf("unexpected result: %q", result)
	}
	if !strings.Contains(model.prompts[1], `Tool "telepathy" is not available`) {
		t.Fatalf("missing not-available notice:\n%s", model.prompts[1])
	}
}

func TestAgentRecoversFromToolError(t *testing.T) {
	broken := &stubTool{name: "flaky", err: errors.New("backend down")}
	finish := &stubTool{name: "finish", terminal: true, reply: "gave up gracefully"}
	model := &scriptedModel{responses: []string{
		`tool:flaky {"input": "anything"}`,
		`tool:finish {"input": "gave up gracefully"}`,
	}}

	agent := newTestAgent(t, model, broken, finish)
	result, err := agent.Run(context.Background(), "poke the flaky tool")
	if err != nil {
		t.Fatalf("tool errors must not abort the run: %v", err)
	}
	if result != "gave up gracefully" {
		t.Fatalf("unexpected result: %q", result)
	}
	if !strings.Contains(model.prompts[1], "Tool flaky failed: backend down") {
		t.Fatalf("missing failure feedback:\n%s", model.prompts[1])
	}
}

func TestAgentIterationBound(t *testing.T) {
	model := &scriptedModel{responses: []string{"still thinking, no tools"}}
	agent, err := NewAgent(AgentOptions{
		Model:         model,
		Registry:      NewStaticRegistry(&stubTool{name: "finish", terminal: true}),
		MaxIterations: 3,
	})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}

	result, err := agent.Run(context.Background(), "never finish")
	if err != nil {
		t.Fatalf("exhausting the bound must not be an error: %v", err)
	}
	if result != MaxIterationsMessage {
		t.Fatalf("expected the max-iterations sentinel, got %q", result)
	}
	if model.calls != 3 {
		t.Fatalf("expected exactly 3 model calls, got %d", model.calls)
	}
}

func TestAgentModelErrorIsFatal(t *testing.T) {
	agent, err := NewAgent(AgentOptions{Model: &failingModel{err: errors.New("rate limited")}})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}

	if _, err := agent.Run(context.Background(), "anything"); err == nil {
		t.Fatalf("expected a transport error to abort the run")
	}
}

func TestAgentRejectsEmptyTask(t *testing.T) {
	agent, err := NewAgent(AgentOptions{Model: &scriptedModel{}})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	if _, err := agent.Run(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty task")
	}
}

func TestAgentHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agent := newTestAgent(t, &scriptedModel{responses: []string{"thinking"}})
	if _, err := agent.Run(ctx, "anything"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAgentDefaults(t *testing.T) {
	agent, err := NewAgent(AgentOptions{Model: &scriptedModel{}, Role: RoleOrchestrator})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	if agent.maxIterations != OrchestratorMaxIterations {
		t.Fatalf("expected the orchestrator bound, got %d", agent.maxIterations)
	}
	if agent.Name() != string(RoleOrchestrator) {
		t.Fatalf("expected the role as the default name, got %q", agent.Name())
	}

	agent, err = NewAgent(AgentOptions{Model: &scriptedModel{}})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	if agent.maxIterations != SpecialistMaxIterations {
		t.Fatalf("expected the specialist bound, got %d", agent.maxIterations)
	}

	if _, err := NewAgent(AgentOptions{}); err == nil {
		t.Fatalf("expected an error without a model")
	}
}

func TestAgentAdvertisesDelegation(t *testing.T) {
	reg := NewStaticRegistry(&stubTool{name: "finish", terminal: true})
	reg.Register(NewDelegateTool(&stubSpecialist{name: "researcher"}))

	agent, err := NewAgent(AgentOptions{Model: &scriptedModel{}, Registry: reg, Role: RoleOrchestrator})
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}
	seed := agent.seedPrompt()
	if !strings.Contains(seed, "delegate:<name>") {
		t.Fatalf("delegation hint missing from the seed prompt:\n%s", seed)
	}
	if !strings.Contains(seed, "tool:<name>") {
		t.Fatalf("invocation contract missing from the seed prompt:\n%s", seed)
	}
}
