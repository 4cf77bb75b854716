// Package fit evaluates a segmented manuscript against one journal guideline.
//
// # Architecture
//
// Evaluation is a small rule engine in the shape of a linter. Each rule is a
// data-driven RuleDef registered in a fixed order:
//
//   - GF01 (structure): every category named by the guideline's structure
//     text must be present in the manuscript.
//   - GF02 (word-limit): the total word count must not exceed the word limit.
//   - GF03 (abstract-limit): the first Abstract section must not exceed the
//     abstract limit.
//
// Rules never fail on malformed limit text; a limit without a parseable
// number is treated as absent.
//
// # Configuration
//
// Use Config to disable rules or change their severity:
//
//	cfg := fit.NewConfig()
//	cfg.Disable("GF03")
//	cfg.SetSeverity("GF02", core.SeverityWarning)
//	diags := fit.NewEvaluator(cfg).Check(ctx)
//
// Evaluate runs every registered rule with the default configuration and
// returns the change requests as plain strings.
package fit
