package loader

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

var blankLines = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// decodeText splits plain text on blank lines. Plain text carries no
// headings, so it always segments as a single document section.
func decodeText(data []byte) (core.Document, error) {
	var out []core.Paragraph
	for _, block := range blankLines.Split(string(data), -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		out = append(out, core.Paragraph{Text: block})
	}
	return core.Document{Paragraphs: out}, nil
}
