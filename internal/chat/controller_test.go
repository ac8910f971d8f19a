package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/prompts"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tax.yaml"), []byte("authority: revenue service\n"), 0o644))
	return NewController(reasoning.NewChain(nil, nil), expertise.NewLoader(dir, nil))
}

func TestSelectTemplate(t *testing.T) {
	c := newController(t)

	got := c.SelectTemplate(prompts.Session{
		History:      []string{"What is the statute of limitations?", "It depends."},
		Role:         "user",
		Jurisdiction: "US",
	})

	assert.Contains(t, got, "Conversation so far")
	assert.Contains(t, got, "United States law")
	assert.Contains(t, got, "concise")
}

func TestRunReasoningMatchesChain(t *testing.T) {
	c := newController(t)

	res := c.RunReasoning("Is X liable?")

	assert.Equal(t, reasoning.NewChain(nil, nil).Run("Is X liable?"), res)
	assert.Contains(t, res.Conclusion.Conclusion, res.Application.Analysis)
}

func TestConfigure(t *testing.T) {
	c := newController(t)

	p := c.Configure("", "What about GST assessment?")

	assert.Equal(t, expertise.DomainTax, c.Domain())
	assert.Equal(t, "revenue service", p["authority"])
	assert.Equal(t, p, c.Profile())
}
