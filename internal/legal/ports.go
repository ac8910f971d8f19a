package legal

import (
	"context"

	"github.com/Vovarama1992/lexbridge/internal/challenge"
	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type Message struct {
	ID             int64
	ConversationID string
	Sender         Sender
	Text           string
	CreatedAt      int64
}

// TurnRequest is one user turn. Claims become verification challenges.
type TurnRequest struct {
	ConversationID string   `json:"-"`
	Question       string   `json:"question"`
	Claims         []string `json:"claims"`
	Role           string   `json:"role"`
	Jurisdiction   string   `json:"jurisdiction"`
	Domain         string   `json:"domain,omitempty"`
}

type TurnResult struct {
	ConversationID string            `json:"conversation_id"`
	Template       string            `json:"template"`
	Domain         string            `json:"domain"`
	Profile        expertise.Profile `json:"profile"`
	Prompt         string            `json:"prompt"`
	Unresolved     []string          `json:"unresolved"`
	Reasoning      reasoning.Result  `json:"reasoning"`
	Answer         string            `json:"answer,omitempty"`
	Confidence     float64           `json:"confidence,omitempty"`
}

type ChallengeState struct {
	ConversationID string                `json:"conversation_id"`
	Challenges     []challenge.Challenge `json:"challenges"`
	Unresolved     []string              `json:"unresolved"`
	Formatted      string                `json:"formatted"`
}

// Repo is the persistence port.
type Repo interface {
	Migrate(ctx context.Context) error
	SaveMessage(ctx context.Context, msg *Message) error
	GetHistory(ctx context.Context, conversationID string) ([]Message, error)
	LoadChallenges(ctx context.Context, conversationID string) ([]challenge.Challenge, error)
	SaveChallenges(ctx context.Context, conversationID string, items []challenge.Challenge) error
}

// Service orchestrates conversation turns.
type Service interface {
	HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error)
	AnswerChallenge(ctx context.Context, conversationID, question, answer string) (*ChallengeState, error)
	Challenges(ctx context.Context, conversationID string) (*ChallengeState, error)
}
