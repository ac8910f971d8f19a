package legal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Vovarama1992/lexbridge/internal/ai"
	"github.com/Vovarama1992/lexbridge/internal/challenge"
	"github.com/Vovarama1992/lexbridge/internal/chat"
	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/prompts"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrAI             = errors.New("answer step failed")
)

type Options struct {
	// StrictChallenges rejects answers to questions that were never raised.
	StrictChallenges bool
	// AI is optional; nil skips the answer step.
	AI ai.AI
}

type service struct {
	repo   Repo
	chain  *reasoning.Chain
	loader *expertise.Loader
	ai     ai.AI
	strict bool
	locks  *keyedMutex
	logger *zap.Logger
}

func NewService(
	repo Repo,
	chain *reasoning.Chain,
	loader *expertise.Loader,
	opts Options,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:   repo,
		chain:  chain,
		loader: loader,
		ai:     opts.AI,
		strict: opts.StrictChallenges,
		locks:  newKeyedMutex(),
		logger: logger,
	}
}

type aiAnswer struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

func (s *service) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.ConversationID == "" {
		return nil, fmt.Errorf("%w: missing conversation id", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: missing question", ErrInvalidRequest)
	}

	unlock := s.locks.lock(req.ConversationID)
	defer unlock()

	log := s.logger.With(zap.String("conversation_id", req.ConversationID))
	log.Info("new turn", zap.String("question", req.Question), zap.Int("claims", len(req.Claims)))

	history, err := s.repo.GetHistory(ctx, req.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	tracker, err := s.loadTracker(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}

	turns := lo.FilterMap(history, func(m Message, _ int) (string, bool) {
		return m.Text, strings.TrimSpace(m.Text) != ""
	})

	ctrl := chat.NewController(s.chain, s.loader)

	// --------------------------------------------------
	// TEMPLATE + EXPERTISE
	// --------------------------------------------------

	template := ctrl.SelectTemplate(prompts.Session{
		History:      turns,
		Role:         req.Role,
		Jurisdiction: req.Jurisdiction,
	})
	profile := ctrl.Configure(req.Domain, req.Question)

	// --------------------------------------------------
	// VERIFY ASSUMPTIONS + REASONING
	// --------------------------------------------------

	prompt := prompts.BuildLegalPrompt(req.Question, req.Claims, tracker)
	result := ctrl.RunReasoning(req.Question)

	out := &TurnResult{
		ConversationID: req.ConversationID,
		Template:       template,
		Domain:         ctrl.Domain(),
		Profile:        profile,
		Prompt:         prompt,
		Unresolved:     tracker.Unresolved(),
		Reasoning:      result,
	}

	if err := s.repo.SaveMessage(ctx, &Message{
		ConversationID: req.ConversationID,
		Sender:         SenderUser,
		Text:           req.Question,
	}); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}
	if err := s.repo.SaveChallenges(ctx, req.ConversationID, tracker.Challenges()); err != nil {
		return nil, fmt.Errorf("save challenges: %w", err)
	}

	if s.ai == nil {
		return out, nil
	}

	// --------------------------------------------------
	// ANSWER
	// --------------------------------------------------

	system := prompts.BuildAnswerSystemPrompt(
		template,
		out.Domain,
		profile,
		prompts.UnresolvedChallengesPrompt(tracker),
	)
	answer, err := s.answer(ctx, system, chatHistory(history), prompt)
	if err != nil {
		log.Error("answer step failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAI, err)
	}

	out.Answer = answer.Answer
	out.Confidence = answer.Confidence

	if strings.TrimSpace(answer.Answer) == "" {
		log.Warn("answer step returned empty text, not stored")
		return out, nil
	}

	if err := s.repo.SaveMessage(ctx, &Message{
		ConversationID: req.ConversationID,
		Sender:         SenderAssistant,
		Text:           answer.Answer,
	}); err != nil {
		return nil, fmt.Errorf("save assistant message: %w", err)
	}

	log.Info("turn answered", zap.String("domain", out.Domain), zap.Int("unresolved", len(out.Unresolved)))
	return out, nil
}

func (s *service) answer(ctx context.Context, system string, history []ai.Message, input string) (aiAnswer, error) {
	raw, err := s.ai.GetReply(ctx, system, history, input)
	if err != nil {
		return aiAnswer{}, err
	}

	var resp aiAnswer
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.logger.Warn("answer is not json, using raw text", zap.Error(err), zap.String("raw", short(raw)))
		return aiAnswer{Answer: strings.TrimSpace(raw)}, nil
	}

	return resp, nil
}

func (s *service) AnswerChallenge(ctx context.Context, conversationID, question, answer string) (*ChallengeState, error) {
	if conversationID == "" || question == "" {
		return nil, fmt.Errorf("%w: missing conversation id or question", ErrInvalidRequest)
	}

	unlock := s.locks.lock(conversationID)
	defer unlock()

	tracker, err := s.loadTracker(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := tracker.Answer(question, answer); err != nil {
		return nil, err
	}

	if err := s.repo.SaveChallenges(ctx, conversationID, tracker.Challenges()); err != nil {
		return nil, fmt.Errorf("save challenges: %w", err)
	}

	s.logger.Info("challenge answered",
		zap.String("conversation_id", conversationID),
		zap.Int("unresolved", len(tracker.Unresolved())),
	)
	return stateOf(conversationID, tracker), nil
}

func (s *service) Challenges(ctx context.Context, conversationID string) (*ChallengeState, error) {
	tracker, err := s.loadTracker(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return stateOf(conversationID, tracker), nil
}

// ------------------------------------------------------------

func (s *service) loadTracker(ctx context.Context, conversationID string) (*challenge.Tracker, error) {
	items, err := s.repo.LoadChallenges(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}

	var opts []challenge.Option
	if s.strict {
		opts = append(opts, challenge.WithStrict())
	}
	return challenge.Restore(items, opts...), nil
}

func stateOf(conversationID string, tracker *challenge.Tracker) *ChallengeState {
	return &ChallengeState{
		ConversationID: conversationID,
		Challenges:     tracker.Challenges(),
		Unresolved:     tracker.Unresolved(),
		Formatted:      tracker.FormatUnresolved(),
	}
}

// chatHistory turns stored messages into model turns, skipping blank ones.
func chatHistory(history []Message) []ai.Message {
	return lo.FilterMap(history, func(m Message, _ int) (ai.Message, bool) {
		return ai.Message{Role: string(m.Sender), Text: m.Text}, strings.TrimSpace(m.Text) != ""
	})
}

const shortLimit = 180

// short truncates to shortLimit runes so logged text stays valid UTF-8.
func short(s string) string {
	if utf8.RuneCountInString(s) <= shortLimit {
		return s
	}
	return string([]rune(s)[:shortLimit]) + "..."
}

// keyedMutex serializes work per conversation.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
