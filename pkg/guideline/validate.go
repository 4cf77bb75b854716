package guideline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// Issue describes one problem found in a catalog record.
type Issue struct {
	Index   int    `json:"index"`
	Journal string `json:"journal,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("Entry %d: %s", i.Index, i.Message)
}

// numericHint matches limit text that looks like it should carry a count.
var numericHint = regexp.MustCompile(`(?i)\b(words?|characters?|figures?|tables?|references?|max(imum)?)\b`)

// Validate checks catalog records for missing identity fields, duplicate
// (journal, article type) keys and count-like limits with no parseable number.
func Validate(records []core.Guideline) []Issue {
	var issues []Issue
	seen := make(map[core.GuidelineKey]int)

	for i, g := range records {
		if strings.TrimSpace(g.Journal) == "" {
			issues = append(issues, Issue{Index: i, Field: "journal", Message: `missing required property "journal".`})
		}
		if strings.TrimSpace(g.ArticleType) == "" {
			issues = append(issues, Issue{Index: i, Journal: g.Journal, Field: "article_type", Message: `missing required property "article_type".`})
		}

		key := g.Key()
		if key.Journal != "" {
			if first, dup := seen[key]; dup {
				issues = append(issues, Issue{
					Index:   i,
					Journal: g.Journal,
					Message: fmt.Sprintf("duplicate of entry %d (%s).", first, g),
				})
			} else {
				seen[key] = i
			}
		}

		for _, f := range countFields(g) {
			if f.value == "" {
				continue
			}
			if _, _, overflow := parseCount(f.value); !overflow && !numericHint.MatchString(f.value) {
				continue
			}
			switch _, ok, overflow := parseCount(f.value); {
			case overflow:
				issues = append(issues, Issue{
					Index:   i,
					Journal: g.Journal,
					Field:   f.name,
					Message: fmt.Sprintf("property %q has an out-of-range limit: %q.", f.name, f.value),
				})
			case !ok:
				issues = append(issues, Issue{
					Index:   i,
					Journal: g.Journal,
					Field:   f.name,
					Message: fmt.Sprintf("property %q has no numeric limit: %q.", f.name, f.value),
				})
			}
		}
	}
	return issues
}

type namedField struct {
	name  string
	value string
}

// countFields lists the limit fields that are expected to hold a number.
func countFields(g core.Guideline) []namedField {
	return []namedField{
		{"abstract_limit", g.AbstractLimit},
		{"word_limit", g.WordLimit},
	}
}
