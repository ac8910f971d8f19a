package challenge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	unresolvedHeader = "The following points need confirmation before legal analysis:"
	unresolvedFooter = "Please clarify or correct these items."
)

var ErrUnknownChallenge = errors.New("challenge: question is not tracked")

// Challenge is a clarifying question; an empty Answer means unresolved.
type Challenge struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
}

func (c Challenge) Resolved() bool {
	return c.Answer != ""
}

// Tracker keeps challenges in insertion order with an index by question.
// Not safe for concurrent use.
type Tracker struct {
	items  []Challenge
	index  map[string]int
	strict bool
}

type Option func(*Tracker)

// WithStrict makes Answer report questions that were never added.
func WithStrict() Option {
	return func(t *Tracker) { t.strict = true }
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{index: make(map[string]int)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Restore rebuilds a tracker from persisted challenges, keeping their order.
func Restore(items []Challenge, opts ...Option) *Tracker {
	t := NewTracker(opts...)
	for _, c := range items {
		if _, ok := t.index[c.Question]; ok {
			continue
		}
		t.index[c.Question] = len(t.items)
		t.items = append(t.items, c)
	}
	return t
}

func (t *Tracker) Add(question string) {
	if _, ok := t.index[question]; ok {
		return
	}
	t.index[question] = len(t.items)
	t.items = append(t.items, Challenge{Question: question})
}

// Answer stores the answer for a tracked question. Untracked questions are
// ignored unless the tracker is strict.
func (t *Tracker) Answer(question, answer string) error {
	i, ok := t.index[question]
	if !ok {
		if t.strict {
			return fmt.Errorf("%w: %q", ErrUnknownChallenge, question)
		}
		return nil
	}
	t.items[i].Answer = answer
	return nil
}

func (t *Tracker) Len() int {
	return len(t.items)
}

// Challenges returns a copy of all challenges in insertion order.
func (t *Tracker) Challenges() []Challenge {
	out := make([]Challenge, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Tracker) Unresolved() []string {
	return lo.FilterMap(t.items, func(c Challenge, _ int) (string, bool) {
		return c.Question, !c.Resolved()
	})
}

// FormatUnresolved renders pending questions as a numbered list, or "" when
// nothing is pending.
func (t *Tracker) FormatUnresolved() string {
	pending := t.Unresolved()
	if len(pending) == 0 {
		return ""
	}

	lines := make([]string, 0, len(pending)+2)
	lines = append(lines, unresolvedHeader)
	for i, q := range pending {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, q))
	}
	lines = append(lines, unresolvedFooter)

	return strings.Join(lines, "\n")
}
