package core

// Paragraph is one block of manuscript text as presented by a document loader.
type Paragraph struct {
	Text    string
	Heading bool
}

// Document is an ordered paragraph stream with a display name.
// The source format (docx, markdown, plain text) is opaque past the loader.
type Document struct {
	Name       string
	Meta       DocumentMeta
	Paragraphs []Paragraph
}

// DocumentMeta holds optional metadata declared by the manuscript itself,
// such as markdown frontmatter. Empty fields are undeclared.
type DocumentMeta struct {
	Title       string `yaml:"title" json:"title,omitempty"`
	Journal     string `yaml:"journal" json:"journal,omitempty"`
	ArticleType string `yaml:"article_type" json:"article_type,omitempty"`
}

// SectionSummary describes one heading-delimited span of a manuscript.
type SectionSummary struct {
	Title     string   `json:"title"`
	WordCount int      `json:"word_count"`
	Category  Category `json:"category"`
}

// AnalysisResult is the outcome of evaluating a manuscript against a set of
// guidelines. It is built fresh per analysis and never mutated afterwards.
type AnalysisResult struct {
	Sections         []SectionSummary    `json:"sections"`
	TotalWords       int                 `json:"total_words"`
	Categories       CategorySet         `json:"categories"`
	AcceptedJournals []string            `json:"accepted_journals"`
	RequiredChanges  map[string][]string `json:"required_changes"`
}

// IsAccepted reports whether journal is in the accepted list.
func (r *AnalysisResult) IsAccepted(journal string) bool {
	for _, j := range r.AcceptedJournals {
		if j == journal {
			return true
		}
	}
	return false
}
