package manuscript

import (
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// Keyword pairs a lower-case title fragment with the category it implies.
type Keyword struct {
	Text     string
	Category core.Category
}

// keywords is checked in order; the first fragment contained in a title wins.
var keywords = []Keyword{
	{"introduction", core.CategoryIntroduction},
	{"background", core.CategoryIntroduction},
	{"method", core.CategoryMethods},
	{"methods", core.CategoryMethods},
	{"materials and methods", core.CategoryMethods},
	{"methodology", core.CategoryMethods},
	{"result", core.CategoryResults},
	{"results", core.CategoryResults},
	{"discussion", core.CategoryDiscussion},
	{"conclusion", core.CategoryConclusion},
	{"conclusions", core.CategoryConclusion},
	{"abstract", core.CategoryAbstract},
}

// Keywords returns a copy of the keyword table in check order.
func Keywords() []Keyword {
	out := make([]Keyword, len(keywords))
	copy(out, keywords)
	return out
}

// Categorize returns the category implied by a section title, or
// core.CategoryOther when no keyword matches.
func Categorize(title string) core.Category {
	lowered := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw.Text) {
			return kw.Category
		}
	}
	return core.CategoryOther
}

// MatchCategories returns every category whose keyword appears anywhere in text.
func MatchCategories(text string) core.CategorySet {
	set := make(core.CategorySet)
	if strings.TrimSpace(text) == "" {
		return set
	}
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw.Text) {
			set.Add(kw.Category)
		}
	}
	return set
}
