package mission

import "testing"

func TestExtractToolCallEnvelope(t *testing.T) {
	call, ok := ExtractToolCall("Let me check.\ntool:calculator {\"expression\": \"2+2\"}")
	if !ok {
		t.Fatalf("expected a tool call")
	}
	if call.Name != "calculator" {
		t.Fatalf("expected calculator, got %q", call.Name)
	}
	if call.Arguments["expression"] != "2+2" {
		t.Fatalf("unexpected arguments: %#v", call.Arguments)
	}
}

func TestExtractToolCallArrayArguments(t *testing.T) {
	call, ok := ExtractToolCall("tool:graph [1, 2, 3]")
	if !ok {
		t.Fatalf("expected a tool call")
	}
	items, isList := call.Arguments["items"].([]any)
	if !isList || len(items) != 3 {
		t.Fatalf("expected 3 items, got %#v", call.Arguments)
	}
}

func TestExtractToolCallRawArguments(t *testing.T) {
	call, ok := ExtractToolCall("tool:echo hello there")
	if !ok {
		t.Fatalf("expected a tool call")
	}
	if call.Arguments["input"] != "hello there" {
		t.Fatalf("unexpected arguments: %#v", call.Arguments)
	}
}

func TestExtractToolCallDelegate(t *testing.T) {
	call, ok := ExtractToolCall("delegate:researcher find recent papers")
	if !ok {
		t.Fatalf("expected a delegate call")
	}
	if call.Name != "delegate" {
		t.Fatalf("expected delegate, got %q", call.Name)
	}
	if call.Arguments["specialist"] != "researcher" {
		t.Fatalf("unexpected specialist: %#v", call.Arguments)
	}
	if call.Arguments["input"] != "find recent papers" {
		t.Fatalf("unexpected task: %#v", call.Arguments)
	}
}

func TestExtractToolCallProseFallback(t *testing.T) {
	call, ok := ExtractToolCall("I will use the calculatorTool with 6 * 7")
	if !ok {
		t.Fatalf("expected a tool call")
	}
	if call.Name != "calculator" {
		t.Fatalf("expected calculator, got %q", call.Name)
	}
	if call.Arguments["input"] != "6 * 7" {
		t.Fatalf("unexpected arguments: %#v", call.Arguments)
	}
}

func TestExtractToolCallProseWithoutInput(t *testing.T) {
	call, ok := ExtractToolCall("Time to use the clockTool.")
	if !ok {
		t.Fatalf("expected a tool call")
	}
	if call.Name != "clock" {
		t.Fatalf("expected clock, got %q", call.Name)
	}
	if len(call.Arguments) != 0 {
		t.Fatalf("expected empty arguments, got %#v", call.Arguments)
	}
}

func TestExtractToolCallFirstLineWins(t *testing.T) {
	call, ok := ExtractToolCall("tool:echo first\ntool:echo second")
	if !ok {
		t.Fatalf("expected a tool call")
	}
	if call.Arguments["input"] != "first" {
		t.Fatalf("expected the first line to win, got %#v", call.Arguments)
	}
}

func TestExtractToolCallNoMatch(t *testing.T) {
	if _, ok := ExtractToolCall("Just thinking out loud, no tools needed."); ok {
		t.Fatalf("did not expect a tool call")
	}
	if _, ok := ExtractToolCall(""); ok {
		t.Fatalf("did not expect a tool call from an empty response")
	}
}

func TestExtractToolCallMalformedJSONDegrades(t *testing.T) {
	call, ok := ExtractToolCall(`tool:echo {"broken": `)
	if !ok {
		t.Fatalf("expected a tool call")
	}
	if call.Arguments["input"] != `{"broken":` {
		t.Fatalf("expected raw payload fallback, got %#v", call.Arguments)
	}
}
