package fit

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

// StructureRule checks that every category named by the guideline's
// structure text has a matching section.
var StructureRule = RuleDef{
	ID:          "GF01",
	Name:        "structure",
	Description: "Manuscript must contain a section for every category the journal's structure names",
	Severity:    core.SeverityError,
	Field:       "structure",
	Check:       checkStructure,
}

// WordLimitRule checks the manuscript's total word count.
var WordLimitRule = RuleDef{
	ID:          "GF02",
	Name:        "word-limit",
	Description: "Total word count must not exceed the journal's word limit",
	Severity:    core.SeverityError,
	Field:       "word_limit",
	Check:       checkWordLimit,
}

// AbstractLimitRule checks the word count of the first Abstract section.
var AbstractLimitRule = RuleDef{
	ID:          "GF03",
	Name:        "abstract-limit",
	Description: "Abstract word count must not exceed the journal's abstract limit",
	Severity:    core.SeverityError,
	Field:       "abstract_limit",
	Check:       checkAbstractLimit,
}

func init() {
	Register(StructureRule)
	Register(WordLimitRule)
	Register(AbstractLimitRule)
}

func checkStructure(ctx *Context) []Diagnostic {
	required := guideline.RequiredCategories(ctx.Guideline.Structure)
	missing := required.Difference(ctx.Categories)
	if len(missing) == 0 {
		return nil
	}
	return []Diagnostic{{
		Message: "Add sections covering: " + strings.Join(missing.Strings(), ", "),
	}}
}

func checkWordLimit(ctx *Context) []Diagnostic {
	limit, ok := guideline.ExtractCount(ctx.Guideline.WordLimit)
	if !ok || ctx.TotalWords <= limit {
		return nil
	}
	return []Diagnostic{{
		Message: fmt.Sprintf("Reduce word count by %d to meet %d-word limit", ctx.TotalWords-limit, limit),
	}}
}

func checkAbstractLimit(ctx *Context) []Diagnostic {
	limit, ok := guideline.ExtractCount(ctx.Guideline.AbstractLimit)
	if !ok {
		return nil
	}
	words := abstractWords(ctx.Sections)
	if words <= limit {
		return nil
	}
	return []Diagnostic{{
		Message: fmt.Sprintf("Abstract exceeds limit: %d/%d words (reduce by %d)", words, limit, words-limit),
	}}
}

// abstractWords returns the word count of the first Abstract section, or 0.
func abstractWords(sections []core.SectionSummary) int {
	for _, s := range sections {
		if s.Category == core.CategoryAbstract {
			return s.WordCount
		}
	}
	return 0
}
