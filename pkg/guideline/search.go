package guideline

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// NormalizeSearchValue strips diacritics and case-folds s so that
// "Revista Médica" matches "revista medica".
func NormalizeSearchValue(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(strings.TrimSpace(stripped))
}

// Search returns records whose journal or article type contains every
// whitespace-separated term of query. An empty query returns all records.
func (c *Catalog) Search(query string) []core.Guideline {
	terms := strings.Fields(NormalizeSearchValue(query))
	if len(terms) == 0 {
		return c.All()
	}

	var out []core.Guideline
	for _, g := range c.records {
		haystack := NormalizeSearchValue(g.Journal + " " + g.ArticleType)
		if containsAll(haystack, terms) {
			out = append(out, g)
		}
	}
	return out
}

func containsAll(haystack string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
