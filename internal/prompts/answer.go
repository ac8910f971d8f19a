package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// AnswerFormatGuard goes last in the system prompt.
const AnswerFormatGuard = `
Reply with valid JSON only.
No text outside the JSON object.
Format:
{"answer":"string","confidence":0.0}
Replies in any other format are discarded.
`

const answerStagePrompt = `
You are the ANSWER BUILDER stage.

You receive a legal question together with the assumptions that still need evidence.

Rules:
- answer only from what the user stated and the reasoning notes provided
- when an assumption is unverified, say so instead of treating it as fact
- do not invent statutes, cases or citations
`

// BuildAnswerSystemPrompt joins the session template, optional domain
// guidance, pending clarifications and the format guard.
func BuildAnswerSystemPrompt(template string, domain string, profile map[string]any, unresolved string) string {
	var b strings.Builder

	b.WriteString(strings.TrimSpace(answerStagePrompt))
	b.WriteString("\n\n")
	b.WriteString(template)
	b.WriteString("\n")

	if domain != "" {
		fmt.Fprintf(&b, "\nLegal domain: %s\n", domain)
		for _, line := range profileLines(profile) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if unresolved != "" {
		b.WriteString(unresolved)
	}

	b.WriteString(AnswerFormatGuard)
	return b.String()
}

// profileLines flattens top-level profile keys in sorted order so the prompt
// is stable across runs.
func profileLines(profile map[string]any) []string {
	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := profile[k].(type) {
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, fmt.Sprint(item))
			}
			out = append(out, fmt.Sprintf("- %s: %s", k, strings.Join(items, "; ")))
		default:
			out = append(out, fmt.Sprintf("- %s: %v", k, v))
		}
	}
	return out
}
