package guideline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// ErrDuplicate is returned by Append when the catalog already holds a record
// with the same (journal, article type) key.
var ErrDuplicate = errors.New("guideline already exists")

// Append adds g to the catalog file at path, creating the file when it does
// not exist. Existing entries are kept as written, including fields this
// package does not know. The file is replaced atomically.
func Append(path string, g core.Guideline) error {
	if strings.TrimSpace(g.Journal) == "" || strings.TrimSpace(g.ArticleType) == "" {
		return fmt.Errorf("journal and article type are required")
	}

	entries := []json.RawMessage{}
	data, err := os.ReadFile(path) //nolint:gosec // catalog path comes from config
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read guideline catalog: %w", err)
	default:
		records, err := Parse(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, rec := range records {
			if rec.Key() == g.Key() {
				return fmt.Errorf("%w: %s", ErrDuplicate, g)
			}
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("%s: failed to decode guidelines: %w", path, err)
		}
	}

	entry, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode guideline: %w", err)
	}
	entries = append(entries, entry)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode guideline catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path with data through a synced temp file in the
// same directory. An existing file keeps its permissions.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".guidelines-*.json")
	if err != nil {
		return fmt.Errorf("failed to write guideline catalog: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	_, writeErr := tmp.Write(data)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, syncErr, closeErr); err != nil {
		return fmt.Errorf("failed to write guideline catalog: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to write guideline catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace guideline catalog: %w", err)
	}
	return nil
}
