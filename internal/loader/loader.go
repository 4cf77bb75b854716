// Package loader turns manuscript files into the paragraph/heading stream
// consumed by the segmenter.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported manuscript format")

// decodeFunc parses raw file content into paragraphs.
type decodeFunc func(data []byte) (core.Document, error)

// formats maps lower-case extensions to their decoders.
var formats = map[string]decodeFunc{
	".docx":     decodeDocx,
	".md":       decodeMarkdown,
	".markdown": decodeMarkdown,
	".html":     decodeHTML,
	".htm":      decodeHTML,
	".txt":      decodeText,
	".yaml":     decodeSections,
	".yml":      decodeSections,
}

// Extensions returns the supported file extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads the manuscript at path and returns its paragraphs.
// The document name is the file's base name.
func Load(ctx context.Context, path string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := formats[ext]
	if !ok {
		return core.Document{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to read manuscript: %w", err)
	}

	doc, err := decode(data)
	if err != nil {
		return core.Document{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	doc.Name = filepath.Base(path)
	return doc, nil
}
