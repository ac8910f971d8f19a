// Package chat exposes the reasoning steps as hooks for one conversation and
// keeps its session-scoped expertise state.
package chat

import (
	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/prompts"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

type Controller struct {
	chain     *reasoning.Chain
	expertise *expertise.Controller
}

func NewController(chain *reasoning.Chain, loader *expertise.Loader) *Controller {
	return &Controller{
		chain:     chain,
		expertise: expertise.NewController(loader),
	}
}

// SelectTemplate picks the prompt template for the session metadata.
func (c *Controller) SelectTemplate(session prompts.Session) string {
	return session.Template()
}

// --- expertise ---

func (c *Controller) Configure(domain, text string) expertise.Profile {
	return c.expertise.Configure(domain, text)
}

func (c *Controller) Domain() string {
	return c.expertise.Domain()
}

func (c *Controller) Profile() expertise.Profile {
	return c.expertise.Profile()
}

// --- individual hooks ---

func (c *Controller) GatherFacts(query string) reasoning.Facts {
	return c.chain.GatherFacts(query)
}

func (c *Controller) ExtractLegalRules(facts reasoning.Facts) reasoning.Rules {
	return c.chain.ExtractLegalRules(facts)
}

func (c *Controller) ApplyRules(facts reasoning.Facts, rules reasoning.Rules) reasoning.Analysis {
	return c.chain.ApplyRules(facts, rules)
}

func (c *Controller) Conclude(analysis reasoning.Analysis) reasoning.Conclusion {
	return c.chain.Conclude(analysis)
}

// RunReasoning executes all steps sequentially for query.
func (c *Controller) RunReasoning(query string) reasoning.Result {
	facts := c.GatherFacts(query)
	rules := c.ExtractLegalRules(facts)
	application := c.ApplyRules(facts, rules)
	conclusion := c.Conclude(application)

	return reasoning.Result{
		Facts:       facts,
		Rules:       rules,
		Application: application,
		Conclusion:  conclusion,
	}
}
