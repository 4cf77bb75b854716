package guideline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// ErrNotFound is returned when no record matches a journal/article type lookup.
var ErrNotFound = errors.New("guideline not found")

// Catalog is an immutable, ordered collection of guideline records.
type Catalog struct {
	records []core.Guideline
}

// NewCatalog copies records into a new catalog, keeping their order.
func NewCatalog(records []core.Guideline) *Catalog {
	c := &Catalog{records: make([]core.Guideline, len(records))}
	copy(c.records, records)
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// All returns a copy of the records in catalog order.
func (c *Catalog) All() []core.Guideline {
	out := make([]core.Guideline, len(c.records))
	copy(out, c.records)
	return out
}

// Find returns the first record for journal whose article type matches.
// Matching is case-insensitive; an empty articleType matches any.
func (c *Catalog) Find(journal, articleType string) (core.Guideline, error) {
	matches := c.Filter(journal, articleType)
	if len(matches) == 0 {
		if articleType == "" {
			return core.Guideline{}, fmt.Errorf("%w for %q", ErrNotFound, journal)
		}
		return core.Guideline{}, fmt.Errorf("%w for %q (%s)", ErrNotFound, journal, articleType)
	}
	return matches[0], nil
}

// Filter returns the records matching journal and articleType, in catalog
// order. Empty arguments match everything.
func (c *Catalog) Filter(journal, articleType string) []core.Guideline {
	want := core.Guideline{Journal: journal, ArticleType: articleType}.Key()
	var out []core.Guideline
	for _, g := range c.records {
		key := g.Key()
		if want.Journal != "" && key.Journal != want.Journal {
			continue
		}
		if want.ArticleType != "" && key.ArticleType != want.ArticleType {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Journals returns the distinct journal names in catalog order.
func (c *Catalog) Journals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range c.records {
		k := strings.ToLower(g.Journal)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, g.Journal)
	}
	return out
}

// ArticleTypes returns the article types listed for journal.
func (c *Catalog) ArticleTypes(journal string) []string {
	var out []string
	for _, g := range c.Filter(journal, "") {
		out = append(out, g.ArticleType)
	}
	return out
}
