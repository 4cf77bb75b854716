package core

import "strings"

// Guideline is one journal's declared requirements for an article type.
// Limit fields hold human-authored text such as "250 words"; an empty
// string means the journal declares nothing for that field.
type Guideline struct {
	Journal           string `json:"journal"`
	ArticleType       string `json:"article_type"`
	TitleLimit        string `json:"title_limit,omitempty"`
	AbstractLimit     string `json:"abstract_limit,omitempty"`
	WordLimit         string `json:"word_limit,omitempty"`
	FigureLimit       string `json:"figure_limit,omitempty"`
	ReferenceLimit    string `json:"reference_limit,omitempty"`
	Structure         string `json:"structure,omitempty"`
	OtherRequirements string `json:"other_requirements,omitempty"`
	LastAccessed      string `json:"last_accessed,omitempty"`
}

// GuidelineKey identifies a catalog record.
type GuidelineKey struct {
	Journal     string
	ArticleType string
}

// Key returns the case-folded (journal, article type) identity of g.
func (g Guideline) Key() GuidelineKey {
	return GuidelineKey{
		Journal:     strings.ToLower(strings.TrimSpace(g.Journal)),
		ArticleType: strings.ToLower(strings.TrimSpace(g.ArticleType)),
	}
}

// String returns "Journal (Article type)".
func (g Guideline) String() string {
	if g.ArticleType == "" {
		return g.Journal
	}
	return g.Journal + " (" + g.ArticleType + ")"
}
