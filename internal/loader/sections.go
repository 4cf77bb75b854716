package loader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// DefaultSectionsFile is the conventional name of a section-per-key
// manuscript file.
const DefaultSectionsFile = "manuscript.yaml"

// SectionEntry is one named section of a sections file.
type SectionEntry struct {
	Name  string `yaml:"-"`
	Text  string `yaml:"text"`
	Limit *int   `yaml:"limit"`
}

// LoadSections reads a sections file of the form
//
//	sections:
//	  Introduction:
//	    text: ...
//	    limit: 500
//
// keeping the file's key order.
func LoadSections(ctx context.Context, path string) ([]SectionEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}
	return parseSections(data)
}

func parseSections(data []byte) ([]SectionEntry, error) {
	var root struct {
		Sections yaml.Node `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid sections file: %w", err)
	}

	node := root.Sections
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid sections file: line %d: 'sections' must be a mapping", node.Line)
	}

	entries := make([]SectionEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		entry := SectionEntry{Name: key.Value}
		switch value.Kind {
		case yaml.MappingNode:
			if err := value.Decode(&entry); err != nil {
				return nil, fmt.Errorf("invalid section %q: %w", key.Value, err)
			}
		case yaml.ScalarNode:
			entry.Text = value.Value
		default:
			return nil, fmt.Errorf("invalid section %q: line %d: expected text or mapping", key.Value, value.Line)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// decodeSections turns each section into a heading followed by its text.
func decodeSections(data []byte) (core.Document, error) {
	entries, err := parseSections(data)
	if err != nil {
		return core.Document{}, err
	}
	var out []core.Paragraph
	for _, e := range entries {
		out = append(out,
			core.Paragraph{Text: e.Name, Heading: true},
			core.Paragraph{Text: e.Text},
		)
	}
	return core.Document{Paragraphs: out}, nil
}
