// Package reasoning chains the legal reasoning steps: fact gathering, rule
// extraction, rule application and conclusion. Every step hands its output to
// an audit sink.
package reasoning

import (
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/lexbridge/internal/audit"
)

const (
	StepFacts       = "facts"
	StepRules       = "rules"
	StepApplication = "application"
	StepConclusion  = "conclusion"
)

type Facts struct {
	Facts string `json:"facts"`
}

type Rules struct {
	Rules string `json:"rules"`
}

type Analysis struct {
	Analysis string `json:"analysis"`
}

type Conclusion struct {
	Conclusion string `json:"conclusion"`
}

// Result holds every intermediate artifact of one run.
type Result struct {
	Facts       Facts      `json:"facts"`
	Rules       Rules      `json:"rules"`
	Application Analysis   `json:"application"`
	Conclusion  Conclusion `json:"conclusion"`
}

type Chain struct {
	sink   audit.Sink
	logger *zap.Logger
	now    func() time.Time
}

func NewChain(sink audit.Sink, logger *zap.Logger) *Chain {
	if sink == nil {
		sink = audit.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{sink: sink, logger: logger, now: time.Now}
}

func (c *Chain) GatherFacts(query string) Facts {
	facts := Facts{Facts: "Facts collected for: " + query}
	c.record(StepFacts, facts)
	return facts
}

func (c *Chain) ExtractLegalRules(facts Facts) Rules {
	rules := Rules{Rules: "Rules derived from " + facts.Facts}
	c.record(StepRules, rules)
	return rules
}

func (c *Chain) ApplyRules(facts Facts, rules Rules) Analysis {
	analysis := Analysis{Analysis: "Applying " + rules.Rules + " to " + facts.Facts}
	c.record(StepApplication, analysis)
	return analysis
}

func (c *Chain) Conclude(analysis Analysis) Conclusion {
	conclusion := Conclusion{Conclusion: "Conclusion based on " + analysis.Analysis}
	c.record(StepConclusion, conclusion)
	return conclusion
}

// Run executes the steps in order: facts, rules, application, conclusion.
func (c *Chain) Run(query string) Result {
	facts := c.GatherFacts(query)
	rules := c.ExtractLegalRules(facts)
	application := c.ApplyRules(facts, rules)
	conclusion := c.Conclude(application)

	return Result{
		Facts:       facts,
		Rules:       rules,
		Application: application,
		Conclusion:  conclusion,
	}
}

// record is best-effort: a failing sink never affects the returned result.
func (c *Chain) record(step string, payload any) {
	if err := c.sink.Record(step, payload, c.now()); err != nil {
		c.logger.Warn("audit record failed", zap.String("step", step), zap.Error(err))
	}
}
