package loader

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

var markdownParser = goldmark.New().Parser()

// decodeMarkdown splits frontmatter off and walks the goldmark AST. Heading
// nodes become headings; paragraphs, list text and code blocks become body
// paragraphs.
func decodeMarkdown(data []byte) (core.Document, error) {
	fm, err := ExtractFrontmatter(string(data))
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{
		Meta:       fm.Meta,
		Paragraphs: markdownParagraphs([]byte(fm.Body)),
	}, nil
}

func markdownParagraphs(src []byte) []core.Paragraph {
	root := markdownParser.Parse(text.NewReader(src))

	var out []core.Paragraph
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			out = append(out, core.Paragraph{Text: inlineText(node, src), Heading: true})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			out = append(out, core.Paragraph{Text: inlineText(node, src)})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			out = append(out, core.Paragraph{Text: blockLines(node, src)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// inlineText concatenates the text segments under n, turning line breaks
// into spaces.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				sb.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					sb.WriteByte(' ')
				}
			case *ast.String:
				sb.Write(t.Value)
			case *ast.AutoLink:
				sb.Write(t.Label(src))
			default:
				collect(c)
			}
		}
	}
	collect(n)
	return sb.String()
}

func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
