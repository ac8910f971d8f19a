package prompts

import (
	"strings"

	"github.com/samber/lo"

	"github.com/Vovarama1992/lexbridge/internal/challenge"
)

const (
	assistantLine       = "You are a legal research assistant."
	verifySectionHeader = "## Verify Assumptions"
)

// ClaimChallenge turns a claim into the clarifying question asked about it.
func ClaimChallenge(claim string) string {
	return "What evidence supports the claim that " + claim + "?"
}

// BuildLegalPrompt asks the model to verify key assumptions. Every generated
// question is registered in tracker when one is given.
func BuildLegalPrompt(question string, claims []string, tracker *challenge.Tracker) string {
	lines := []string{
		assistantLine,
		"User question: " + question,
		"",
		verifySectionHeader,
	}

	for _, q := range lo.Map(claims, func(c string, _ int) string { return ClaimChallenge(c) }) {
		lines = append(lines, "- "+q)
		if tracker != nil {
			tracker.Add(q)
		}
	}

	return strings.Join(lines, "\n")
}

// UnresolvedChallengesPrompt wraps the pending block in blank lines; an empty
// block stays empty.
func UnresolvedChallengesPrompt(tracker *challenge.Tracker) string {
	block := tracker.FormatUnresolved()
	if block == "" {
		return block
	}
	return "\n" + block + "\n"
}
