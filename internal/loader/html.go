package loader

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// decodeHTML converts the page to markdown and loads that.
func decodeHTML(data []byte) (core.Document, error) {
	md, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to convert html: %w", err)
	}
	return core.Document{Paragraphs: markdownParagraphs([]byte(md))}, nil
}
