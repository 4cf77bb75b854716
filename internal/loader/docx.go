package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

const (
	docxBody   = "word/document.xml"
	docxStyles = "word/styles.xml"
)

// decodeDocx reads the paragraphs of a WordprocessingML package. A paragraph
// is a heading when its style ID or style name starts with "heading".
func decodeDocx(data []byte) (core.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to open docx archive: %w", err)
	}

	var body, styles *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case docxBody:
			body = f
		case docxStyles:
			styles = f
		}
	}
	if body == nil {
		return core.Document{}, fmt.Errorf("docx archive has no %s", docxBody)
	}

	names := map[string]string{}
	if styles != nil {
		names, err = readStyleNames(styles)
		if err != nil {
			return core.Document{}, err
		}
	}

	rc, err := body.Open()
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to open %s: %w", docxBody, err)
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := readParagraphs(rc, names)
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{Paragraphs: paragraphs}, nil
}

// readStyleNames maps style IDs to their display names.
func readStyleNames(f *zip.File) (map[string]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", docxStyles, err)
	}
	defer func() { _ = rc.Close() }()

	names := make(map[string]string)
	dec := xml.NewDecoder(rc)
	var current string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", docxStyles, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "style":
			current = attr(se, "styleId")
		case "name":
			if current != "" {
				names[current] = attr(se, "val")
			}
		}
	}
}

// paragraphBuilder accumulates the runs of one body-level w:p element.
type paragraphBuilder struct {
	text  strings.Builder
	style string
	depth int // element depth of the w:p
}

// readParagraphs returns the paragraphs that are direct children of w:body.
// Paragraphs nested in tables, text boxes and other containers are not part
// of the body flow and contribute no text. mc:Fallback subtrees repeat their
// mc:Choice content and are skipped.
func readParagraphs(r io.Reader, styleNames map[string]string) ([]core.Paragraph, error) {
	dec := xml.NewDecoder(r)
	var (
		out    []core.Paragraph
		path   []string // local names of the open elements
		cur    *paragraphBuilder
		skip   int // depth of the mc:Fallback being skipped
		inText bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", docxBody, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			depth := len(path)
			if skip > 0 {
				continue
			}
			if t.Name.Local == "Fallback" {
				skip = depth
				continue
			}
			switch t.Name.Local {
			case "p":
				if cur == nil && parent(path) == "body" {
					cur = &paragraphBuilder{depth: depth}
				}
			case "pStyle":
				// w:p/w:pPr/w:pStyle
				if cur != nil && depth == cur.depth+2 {
					cur.style = attr(t, "val")
				}
			case "t":
				inText = cur != nil && ownRun(path, cur.depth)
			case "tab", "br", "cr":
				if cur != nil && parent(path) == "r" && ownRun(path, cur.depth) {
					cur.text.WriteByte(' ')
				}
			}
		case xml.EndElement:
			depth := len(path)
			if depth > 0 {
				path = path[:depth-1]
			}
			if skip > 0 {
				if depth == skip {
					skip = 0
				}
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if cur != nil && depth == cur.depth {
					out = append(out, core.Paragraph{
						Text:    cur.text.String(),
						Heading: isHeadingStyle(cur.style, styleNames[cur.style]),
					})
					cur = nil
				}
			}
		case xml.CharData:
			if inText && skip == 0 {
				cur.text.Write(t)
			}
		}
	}
}

// parent returns the local name of the innermost open element's parent.
func parent(path []string) string {
	if len(path) < 2 {
		return ""
	}
	return path[len(path)-2]
}

// ownRun reports whether the innermost element belongs to the paragraph
// opened at depth, rather than to a paragraph nested inside it.
func ownRun(path []string, depth int) bool {
	for _, name := range path[depth : len(path)-1] {
		if name == "p" || name == "txbxContent" {
			return false
		}
	}
	return true
}

func isHeadingStyle(id, name string) bool {
	return hasFoldPrefix(id, "heading") || hasFoldPrefix(name, "heading")
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
