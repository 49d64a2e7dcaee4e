package mission

import (
	"strings"

	json "github.com/alpkeskin/gotoon"
)

// ToolCall is a parsed (tool name, arguments) pair extracted from the
// model's latest text output. It exists only within one loop iteration.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// ExtractToolCall scans a model response for a tool invocation.
//
// The primary contract is a structured envelope on its own line:
//
//	tool:<name> <json-arguments>
//	delegate:<name> <task>
//
// A prose fallback is also recognised so that models answering in free
// text still work: a line containing "use " followed by a token ending
// in "Tool" invokes that tool, with everything after a trailing "with "
// becoming the single "input" argument.
//
// The first matching line wins. ok is false when no line matches.
func ExtractToolCall(response string) (ToolCall, bool) {
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		switch {
		case strings.HasPrefix(lower, "tool:"):
			name, args := splitCommand(trimmed[len("tool:"):])
			if name == "" {
				continue
			}
			return ToolCall{Name: name, Arguments: parseArguments(args)}, true
		case strings.HasPrefix(lower, "delegate:"):
			name, args := splitCommand(trimmed[len("delegate:"):])
			if name == "" {
				continue
			}
			return ToolCall{
				Name:      "delegate",
				Arguments: map[string]any{"specialist": name, "input": args},
			}, true
		}

		if call, ok := extractProseCall(trimmed); ok {
			return call, true
		}
	}
	return ToolCall{}, false
}

// extractProseCall implements the legacy "use <Name>Tool with <input>"
// line scan.
func extractProseCall(line string) (ToolCall, bool) {
	idx := strings.Index(line, "use ")
	if idx == -1 {
		return ToolCall{}, false
	}
	rest := line[idx+len("use "):]

	suffix := strings.Index(rest, "Tool")
	if suffix == -1 {
		return ToolCall{}, false
	}
	name := strings.TrimSpace(rest[:suffix])
	if name == "" || strings.ContainsAny(name, ".,;:!?") {
		return ToolCall{}, false
	}
	// Keep only the last whitespace-delimited token so that
	// "I will use the calculatorTool" resolves to "calculator".
	if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[len(fields)-1]
	}

	args := map[string]any{}
	after := rest[suffix+len("Tool"):]
	if widx := strings.Index(after, "with "); widx != -1 {
		args["input"] = strings.TrimSpace(after[widx+len("with "):])
	}
	return ToolCall{Name: name, Arguments: args}, true
}

// parseArguments interprets the argument payload of a structured
// envelope. JSON objects pass through as maps, JSON arrays become an
// "items" entry, anything else degrades to a single "input" string.
func parseArguments(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}
	}
	if strings.HasPrefix(raw, "{") {
		var payload map[string]any
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			return payload
		}
	}
	if strings.HasPrefix(raw, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			return map[string]any{"items": arr}
		}
	}
	return map[string]any{"input": raw}
}

func splitCommand(payload string) (name, args string) {
	payload = strings.TrimSpace(payload)
	parts := strings.Fields(payload)
	if len(parts) == 0 {
		return "", ""
	}
	name = parts[0]
	if len(payload) > len(name) {
		args = strings.TrimSpace(payload[len(name):])
	}
	return name, args
}
