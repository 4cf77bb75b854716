// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
)

// CatalogJSON is a small guideline catalog used across CLI tests.
const CatalogJSON = `[
  {"journal": "Journal A", "article_type": "Research", "word_limit": "20 words", "structure": "Introduction, Methods, Results"},
  {"journal": "Journal B", "article_type": "Research", "word_limit": "10 words", "structure": "Introduction and Discussion", "abstract_limit": "250 words"},
  {"journal": "Revista Médica", "article_type": "Original Article", "title_limit": "150 characters", "other_requirements": "Bilingual abstract"}
]`

// ManuscriptMarkdown has Introduction (8 words), Methods (5) and Results (3).
const ManuscriptMarkdown = `# Introduction

one two three four five six seven eight

# Methods

one two three four five

# Results

one two three
`

// ChecklistYAML is a section-keyed checklist at 50% overall completion.
const ChecklistYAML = `Introduction:
  item: Write introduction
  done: true
Methods:
  item: Describe methods
  percent: 50
Results:
  item: Report results
  subtasks:
    - item: Tables
      done: true
    - item: Figures
Discussion:
  item: Discuss findings
`

// TestProject describes the files written by SetupTestProject.
type TestProject struct {
	Dir        string
	Catalog    string
	Manuscript string
	Checklist  string
	State      string
}

// SetupTestProject creates a temporary project with a catalog, a manuscript,
// a checklist and an articlecheck.yaml pointing at them.
func SetupTestProject(t *testing.T) *TestProject {
	t.Helper()

	dir := t.TempDir()
	p := &TestProject{
		Dir:        dir,
		Catalog:    filepath.Join(dir, "journal_guidelines.json"),
		Manuscript: filepath.Join(dir, "paper.md"),
		Checklist:  filepath.Join(dir, "checklist.yaml"),
		State:      filepath.Join(dir, ".articlecheck", "history.db"),
	}

	files := map[string]string{
		p.Catalog:                               CatalogJSON,
		p.Manuscript:                            ManuscriptMarkdown,
		p.Checklist:                             ChecklistYAML,
		filepath.Join(dir, "articlecheck.yaml"): "catalog: journal_guidelines.json\nstate_path: .articlecheck/history.db\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return p
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
