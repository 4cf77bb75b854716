package fit

import (
	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// Evaluator runs the registered rules against a manuscript.
type Evaluator struct {
	config *Config
}

// NewEvaluator creates an evaluator with optional configuration.
func NewEvaluator(config *Config) *Evaluator {
	if config == nil {
		config = NewConfig()
	}
	return &Evaluator{config: config}
}

// Check runs every enabled rule in registration order.
func (e *Evaluator) Check(ctx *Context) []Diagnostic {
	if ctx == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range GetAll() {
		if e.config.IsDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(ctx)
		for i := range diags {
			diags[i].RuleID = rule.ID
			diags[i].Severity = e.config.GetSeverity(rule.ID, rule.Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics
}

// Changes runs Check and returns the diagnostic messages in order.
func (e *Evaluator) Changes(ctx *Context) []string {
	diags := e.Check(ctx)
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

// Evaluate reports whether the manuscript fits g and, if not, the change
// requests in rule order. fits is true exactly when changes is empty.
func Evaluate(g core.Guideline, sections []core.SectionSummary, categories core.CategorySet, totalWords int) (fits bool, changes []string) {
	changes = NewEvaluator(nil).Changes(&Context{
		Guideline:  g,
		Sections:   sections,
		Categories: categories,
		TotalWords: totalWords,
	})
	return len(changes) == 0, changes
}

// AllRules returns metadata for every registered rule.
func AllRules() []core.RuleInfo {
	rules := GetAll()
	out := make([]core.RuleInfo, len(rules))
	for i, r := range rules {
		out[i] = r.Info()
	}
	return out
}
