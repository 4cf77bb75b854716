// Package analysis ties segmentation, categorization and guideline fit
// together into a single AnalysisResult.
package analysis

import (
	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/fit"
	"github.com/leapstack-labs/articlecheck/pkg/manuscript"

	"golang.org/x/sync/errgroup"
)

// Analyze segments doc and evaluates it against every guideline.
func Analyze(doc core.Document, guidelines []core.Guideline, opts ...Option) core.AnalysisResult {
	return AnalyzeSections(manuscript.Segment(doc.Paragraphs), guidelines, opts...)
}

// AnalyzeSections evaluates already segmented sections against every
// guideline. Journals appear in AcceptedJournals or RequiredChanges, never
// both, in catalog order of first occurrence.
func AnalyzeSections(sections []core.SectionSummary, guidelines []core.Guideline, opts ...Option) core.AnalysisResult {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	total := manuscript.TotalWords(sections)
	present := manuscript.PresentCategories(sections)
	outcomes := evaluateAll(sections, present, total, guidelines, o)

	result := core.AnalysisResult{
		Sections:         sections,
		TotalWords:       total,
		Categories:       present,
		AcceptedJournals: []string{},
		RequiredChanges:  make(map[string][]string),
	}
	for _, j := range partition(outcomes) {
		if j.accepted {
			result.AcceptedJournals = append(result.AcceptedJournals, j.journal)
			continue
		}
		result.RequiredChanges[j.journal] = j.changes
	}
	return result
}

// ChangeRequests returns the changes sections need to fit g. Only the fit
// rule options apply.
func ChangeRequests(g core.Guideline, sections []core.SectionSummary, opts ...Option) []string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return fit.NewEvaluator(o.fitConfig).Changes(&fit.Context{
		Guideline:  g,
		Sections:   sections,
		Categories: manuscript.PresentCategories(sections),
		TotalWords: manuscript.TotalWords(sections),
	})
}

// outcome is the fit result of one catalog record.
type outcome struct {
	journal string
	changes []string
}

func evaluateAll(sections []core.SectionSummary, present core.CategorySet, total int, guidelines []core.Guideline, o *options) []outcome {
	evaluator := fit.NewEvaluator(o.fitConfig)
	outcomes := make([]outcome, len(guidelines))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, gl := range guidelines {
		g.Go(func() error {
			outcomes[i] = outcome{
				journal: gl.Journal,
				changes: evaluator.Changes(&fit.Context{
					Guideline:  gl,
					Sections:   sections,
					Categories: present,
					TotalWords: total,
				}),
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// journalOutcome is the merged verdict for one journal name.
type journalOutcome struct {
	journal  string
	accepted bool
	changes  []string
}

// partition merges per-record outcomes by journal name. A journal is
// accepted when any of its records fits; otherwise it keeps the changes of
// its first record.
func partition(outcomes []outcome) []journalOutcome {
	index := make(map[string]int)
	var merged []journalOutcome
	for _, oc := range outcomes {
		fits := len(oc.changes) == 0
		i, seen := index[oc.journal]
		if !seen {
			index[oc.journal] = len(merged)
			merged = append(merged, journalOutcome{journal: oc.journal, accepted: fits, changes: oc.changes})
			continue
		}
		if fits {
			merged[i].accepted = true
			merged[i].changes = nil
		}
	}
	return merged
}
