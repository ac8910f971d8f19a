package ai

import "context"

// AI answers one turn. History holds earlier turns of the same conversation,
// oldest first; it never includes the system prompt or the current input.
type AI interface {
	GetReply(ctx context.Context, systemPrompt string, history []Message, input string) (string, error)
}

type Message struct {
	Role string
	Text string
}
