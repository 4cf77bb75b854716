package manuscript

import (
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// FallbackTitle is the title of the single section emitted for documents
// without any heading.
const FallbackTitle = "Document"

type segmentState int

const (
	stateNoSection segmentState = iota
	stateSectionOpen
)

// segmenter accumulates body words into the currently open section.
type segmenter struct {
	state    segmentState
	title    string
	words    int
	total    int
	sections []core.SectionSummary
}

func (s *segmenter) heading(title string) {
	if s.state == stateSectionOpen {
		s.flush()
	}
	s.title = title
	s.words = 0
	s.state = stateSectionOpen
}

func (s *segmenter) body(words int) {
	s.total += words
	if s.state == stateSectionOpen {
		s.words += words
	}
}

func (s *segmenter) flush() {
	s.sections = append(s.sections, core.SectionSummary{
		Title:     s.title,
		WordCount: s.words,
		Category:  Categorize(s.title),
	})
}

func (s *segmenter) finish() []core.SectionSummary {
	switch s.state {
	case stateSectionOpen:
		s.flush()
		s.state = stateNoSection
		return s.sections
	default:
		return []core.SectionSummary{{
			Title:     FallbackTitle,
			WordCount: s.total,
			Category:  core.CategoryOther,
		}}
	}
}

// Segment partitions paragraphs into sections. A section starts at every
// heading whose trimmed text is non-empty and runs until the next one.
// Blank paragraphs are ignored entirely. When no heading exists the whole
// document becomes a single FallbackTitle section.
func Segment(paragraphs []core.Paragraph) []core.SectionSummary {
	s := &segmenter{}
	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		if p.Heading {
			s.heading(text)
			continue
		}
		s.body(CountWords(text))
	}
	return s.finish()
}

// CountWords returns the number of whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TotalWords sums the word counts of sections.
func TotalWords(sections []core.SectionSummary) int {
	total := 0
	for _, s := range sections {
		total += s.WordCount
	}
	return total
}

// PresentCategories returns the categories of sections, excluding Other.
func PresentCategories(sections []core.SectionSummary) core.CategorySet {
	set := make(core.CategorySet)
	for _, s := range sections {
		if s.Category != core.CategoryOther {
			set.Add(s.Category)
		}
	}
	return set
}
