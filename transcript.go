package mission

import "strings"

// Message roles used in a conversation transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a conversation transcript.
type Message struct {
	Role    string
	Content string
}

// renderTranscript flattens a transcript into a single prompt string for
// transports that accept plain text.
func renderTranscript(messages []Message) string {
	var sb strings.Builder
	sb.Grow(4096)

	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		sb.WriteString("[")
		sb.WriteString(m.Role)
		sb.WriteString("] ")
		sb.WriteString(escapePromptContent(content))
		sb.WriteString("\n\n")
	}

	sb.WriteString("Compose the next step or your final answer.\n")
	return sb.String()
}

// escapePromptContent safely escapes content that might break formatting.
func escapePromptContent(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}
