package models

import "context"

// Agent is the language-model transport consumed by the mission engine.
// Implementations return the completion for a rendered prompt; the
// engine stringifies whatever comes back.
type Agent interface {
	Generate(ctx context.Context, prompt string) (any, error)
}
