package fit

import (
	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// Context carries everything a rule may inspect.
// Rules are stateless; all input arrives through the context.
type Context struct {
	Guideline  core.Guideline
	Sections   []core.SectionSummary
	Categories core.CategorySet
	TotalWords int
}

// CheckFunc inspects a manuscript and returns zero or more diagnostics.
type CheckFunc func(ctx *Context) []Diagnostic

// RuleDef is a data-driven fit rule definition.
type RuleDef struct {
	ID          string        // Unique identifier, e.g. "GF01"
	Name        string        // Human-readable name, e.g. "structure"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Field       string        // Guideline field the rule reads
	Check       CheckFunc
}

// Info returns the rule metadata for documentation and tooling.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Field:           r.Field,
	}
}

// Diagnostic is a single change request produced by a rule.
type Diagnostic struct {
	RuleID   string        `json:"rule_id"`
	Severity core.Severity `json:"severity"`
	Message  string        `json:"message"`
}
