package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/articlecheck/internal/cli/config"
	"github.com/leapstack-labs/articlecheck/internal/cli/testutil"
	"github.com/leapstack-labs/articlecheck/internal/loader"
	"github.com/leapstack-labs/articlecheck/internal/state"
	itestutil "github.com/leapstack-labs/articlecheck/internal/testutil"
	"github.com/leapstack-labs/articlecheck/pkg/checklist"
	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

// setupProject writes a test project and loads its config as the current one.
func setupProject(t *testing.T) *testutil.TestProject {
	t.Helper()
	p := testutil.SetupTestProject(t)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	_, err := config.LoadConfig(filepath.Join(p.Dir, "articlecheck.yaml"), nil)
	require.NoError(t, err)
	return p
}

func useJSON(t *testing.T) {
	t.Helper()
	cfg := config.GetCurrentConfig()
	require.NotNil(t, cfg)
	cfg.OutputFormat = "json"
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SetContext(config.WithLogger(context.Background(), itestutil.NewTestLogger(t)))
	err := cmd.Execute()
	return buf.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewAnalyzeCommand(), "analyze <manuscript>", []string{"journal", "article-type", "no-save", "watch", "debounce"}},
		{NewChangesCommand(), "changes <manuscript>", []string{"journal", "article-type"}},
		{NewSectionsCommand(), "sections [manuscript]", nil},
		{NewJournalsCommand(), "journals [query]", nil},
		{NewTemplateCommand(), "template", []string{"journal", "article-type", "format", "out"}},
		{NewProgressCommand(), "progress [checklist]", nil},
		{NewValidateCommand(), "validate", nil},
		{NewHistoryCommand(), "history [run-id]", []string{"limit"}},
		{NewRulesCommand(), "rules [rule-id]", []string{"verbose", "format"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestAnalyze_Markdown(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewAnalyzeCommand(), p.Manuscript)
	require.NoError(t, err)

	assert.Contains(t, out, "# Analysis: paper.md")
	assert.Contains(t, out, "Total words: 16")
	assert.Contains(t, out, "## Accepted journals (2)")
	assert.Contains(t, out, "- ✓ Journal A")
	assert.Contains(t, out, "- ✓ Revista Médica")
	assert.Contains(t, out, "- ! Journal B (2 changes)")
	assert.Contains(t, out, "  - Add sections covering: Discussion")
	assert.Contains(t, out, "  - Reduce word count by 6 to meet 10-word limit")
	assert.Contains(t, out, "Saved as run ")
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)

	_, err = os.Stat(p.State)
	assert.NoError(t, err, "run history should be created")
}

func TestAnalyze_JSON(t *testing.T) {
	p := setupProject(t)
	useJSON(t)

	out, err := execute(t, NewAnalyzeCommand(), p.Manuscript, "--no-save")
	require.NoError(t, err)

	var got analyzeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "paper.md", got.Manuscript)
	assert.Empty(t, got.RunID)
	assert.Equal(t, 16, got.TotalWords)
	assert.Equal(t, []string{"Journal A", "Revista Médica"}, got.AcceptedJournals)
	assert.Equal(t, map[string][]string{
		"Journal B": {
			"Add sections covering: Discussion",
			"Reduce word count by 6 to meet 10-word limit",
		},
	}, got.RequiredChanges)
	require.Len(t, got.Sections, 3)
	assert.Equal(t, core.SectionSummary{Title: "Introduction", WordCount: 8, Category: core.CategoryIntroduction}, got.Sections[0])

	_, err = os.Stat(p.State)
	assert.ErrorIs(t, err, os.ErrNotExist, "--no-save should not touch history")
}

func TestAnalyze_JournalFilter(t *testing.T) {
	p := setupProject(t)
	useJSON(t)

	out, err := execute(t, NewAnalyzeCommand(), p.Manuscript, "--no-save", "--journal", "journal b")
	require.NoError(t, err)

	var got analyzeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.AcceptedJournals)
	assert.Contains(t, got.RequiredChanges, "Journal B")
	assert.Len(t, got.RequiredChanges, 1)
}

func TestAnalyze_FrontmatterJournal(t *testing.T) {
	p := setupProject(t)
	useJSON(t)

	path := filepath.Join(p.Dir, "front.md")
	content := "---\njournal: Journal A\n---\n" + testutil.ManuscriptMarkdown
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, NewAnalyzeCommand(), path, "--no-save")
	require.NoError(t, err)

	var got analyzeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Journal A"}, got.AcceptedJournals)
	assert.Empty(t, got.RequiredChanges)
}

func TestAnalyze_Errors(t *testing.T) {
	p := setupProject(t)

	t.Run("unknown journal", func(t *testing.T) {
		_, err := execute(t, NewAnalyzeCommand(), p.Manuscript, "--no-save", "--journal", "Journal Z")
		require.Error(t, err)
		assert.ErrorIs(t, err, guideline.ErrNotFound)
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(p.Dir, "paper.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))
		_, err := execute(t, NewAnalyzeCommand(), path, "--no-save")
		assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
	})

	t.Run("missing catalog", func(t *testing.T) {
		require.NoError(t, os.Remove(p.Catalog))
		_, err := execute(t, NewAnalyzeCommand(), p.Manuscript, "--no-save")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := execute(t, NewAnalyzeCommand())
		assert.Error(t, err)
	})
}

func TestChanges(t *testing.T) {
	p := setupProject(t)

	t.Run("required changes", func(t *testing.T) {
		out, err := execute(t, NewChangesCommand(), p.Manuscript, "--journal", "Journal B")
		require.NoError(t, err)
		assert.Contains(t, out, "# Changes for Journal B (Research)")
		assert.Contains(t, out, "Add sections covering: Discussion")
		assert.Contains(t, out, "Reduce word count by 6 to meet 10-word limit")
	})

	t.Run("already fits", func(t *testing.T) {
		out, err := execute(t, NewChangesCommand(), p.Manuscript, "-j", "Journal A")
		require.NoError(t, err)
		assert.Contains(t, out, "paper.md already fits Journal A")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := execute(t, NewChangesCommand(), p.Manuscript, "-j", "Journal A", "-t", "Letter")
		require.Error(t, err)
		assert.ErrorIs(t, err, guideline.ErrNotFound)
		assert.Contains(t, err.Error(), "did you mean Journal A (Research)")
	})

	t.Run("journal required", func(t *testing.T) {
		_, err := execute(t, NewChangesCommand(), p.Manuscript)
		assert.ErrorIs(t, err, errJournalRequired)
	})
}

func TestChanges_JSON(t *testing.T) {
	p := setupProject(t)
	useJSON(t)

	out, err := execute(t, NewChangesCommand(), p.Manuscript, "-j", "Journal A")
	require.NoError(t, err)

	var got changesJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Fits)
	assert.Equal(t, []string{}, got.Changes)
	assert.Equal(t, "Research", got.ArticleType)
}

func TestSections(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewSectionsCommand(), p.Manuscript)
	require.NoError(t, err)
	assert.Contains(t, out, "# Sections: paper.md")
	assert.Contains(t, out, "Methods")
	assert.Contains(t, out, "Total words: 16")
	assert.NotContains(t, out, "Usage")
}

func TestSections_WithLimits(t *testing.T) {
	p := setupProject(t)

	path := filepath.Join(p.Dir, "manuscript.yaml")
	content := `sections:
  Introduction:
    text: one two three four five
    limit: 10
  Results: one two
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, NewSectionsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Usage")
	assert.Contains(t, out, "[##########----------]  50.00%")
	assert.Contains(t, out, "Total words: 7")

	useJSON(t)
	out, err = execute(t, NewSectionsCommand(), path)
	require.NoError(t, err)

	var rows []sectionRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Limit)
	assert.Equal(t, 10, *rows[0].Limit)
	assert.Nil(t, rows[1].Limit)
	assert.Equal(t, "Results", rows[1].Category)
}

func TestJournals(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewJournalsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "# Guidelines (3 of 3)")
	assert.Contains(t, out, "Journal A")
	assert.Contains(t, out, "Revista Médica")

	out, err = execute(t, NewJournalsCommand(), "medica")
	require.NoError(t, err)
	assert.Contains(t, out, "Revista Médica")
	assert.NotContains(t, out, "Journal A")

	out, err = execute(t, NewJournalsCommand(), "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No guidelines found.")
}

func TestJournals_JSON(t *testing.T) {
	setupProject(t)
	useJSON(t)

	out, err := execute(t, NewJournalsCommand(), "journal")
	require.NoError(t, err)

	var got []core.Guideline
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Journal A", got[0].Journal)
	assert.Equal(t, "20 words", got[0].WordLimit)
}

func TestJournalsAdd(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewJournalsCommand(), "add", "-j", "Journal C", "-t", "Letter",
		"--word-limit", "800 words", "--structure", "Introduction, Discussion", "--last-accessed", "2026-01-05")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Added Journal C (Letter) to "+p.Catalog)

	cat, err := guideline.Load(p.Catalog)
	require.NoError(t, err)
	require.Equal(t, 4, cat.Len())
	g, err := cat.Find("journal c", "letter")
	require.NoError(t, err)
	assert.Equal(t, "800 words", g.WordLimit)
	assert.Equal(t, "2026-01-05", g.LastAccessed)

	_, err = execute(t, NewJournalsCommand(), "add", "-j", "Journal C", "-t", "letter")
	assert.ErrorIs(t, err, guideline.ErrDuplicate)

	_, err = execute(t, NewJournalsCommand(), "add", "-j", "Journal D")
	assert.ErrorContains(t, err, `required flag(s) "article-type" not set`)
}

func TestJournalsAdd_JSON(t *testing.T) {
	p := setupProject(t)
	useJSON(t)

	out, err := execute(t, NewJournalsCommand(), "add", "-j", "Journal C", "-t", "Letter")
	require.NoError(t, err)

	var got core.Guideline
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Journal C", got.Journal)
	assert.Equal(t, time.Now().Format(time.DateOnly), got.LastAccessed)

	cat, err := guideline.Load(p.Catalog)
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())
}

func TestTemplate(t *testing.T) {
	p := setupProject(t)

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, NewTemplateCommand(), "--journal", "Journal A")
		require.NoError(t, err)
		cl, err := checklist.FromYAML([]byte(out))
		require.NoError(t, err)
		require.Len(t, cl.Tasks, 2)
		assert.Equal(t, "Word limit: 20 words", cl.Tasks[0].Item)
		assert.Equal(t, "Structure: Introduction, Methods, Results", cl.Tasks[1].Item)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, NewTemplateCommand(), "-j", "Revista Médica", "--format", "json")
		require.NoError(t, err)
		cl, err := checklist.FromJSON([]byte(out))
		require.NoError(t, err)
		require.Len(t, cl.Tasks, 2)
		assert.Equal(t, "Title limit: 150 characters", cl.Tasks[0].Item)
		assert.Equal(t, "Other requirements: Bilingual abstract", cl.Tasks[1].Item)
	})

	t.Run("out file", func(t *testing.T) {
		path := filepath.Join(p.Dir, "journal_b.yaml")
		out, err := execute(t, NewTemplateCommand(), "-j", "Journal B", "--out", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 3 tasks for Journal B (Research)")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		cl, err := checklist.FromYAML(data)
		require.NoError(t, err)
		assert.Len(t, cl.Tasks, 3)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := execute(t, NewTemplateCommand(), "-j", "Journal A", "--format", "toml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("journal required", func(t *testing.T) {
		_, err := execute(t, NewTemplateCommand())
		assert.ErrorIs(t, err, errJournalRequired)
	})
}

func TestProgress(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewProgressCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "# Progress: checklist.yaml")
	assert.Contains(t, out, "Introduction")
	assert.Contains(t, out, "Overall: [##########----------]  50.00%")

	useJSON(t)
	out, err = execute(t, NewProgressCommand(), p.Checklist)
	require.NoError(t, err)

	var got progressJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 50.0, got.Overall, 1e-9)
	require.Len(t, got.Tasks, 4)
	assert.Equal(t, taskProgress{Item: "Introduction", Percent: 100}, got.Tasks[0])
	assert.Equal(t, taskProgress{Item: "Methods", Percent: 50}, got.Tasks[1])
	assert.Equal(t, taskProgress{Item: "Results", Percent: 50}, got.Tasks[2])
	assert.Equal(t, taskProgress{Item: "Discussion", Percent: 0}, got.Tasks[3])
}

func TestValidateChecklist(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewValidateCommand(), "checklist", p.Checklist)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (4 tasks)")

	bad := filepath.Join(p.Dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tasks:\n  - item: Draft\n    percent: 150\n"), 0o600))
	_, err = execute(t, NewValidateCommand(), "checklist", bad)
	require.Error(t, err)
	var schemaErr *checklist.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "tasks[0]", schemaErr.Path)

	badJSON := filepath.Join(p.Dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{"tasks": [{"done": true}]}`), 0o600))
	_, err = execute(t, NewValidateCommand(), "checklist", badJSON)
	require.ErrorAs(t, err, &schemaErr)
}

func TestValidateCatalog(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewValidateCommand(), "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "# Catalog: 3 records")
	assert.Contains(t, out, "No issues found")

	dup := `[
  {"journal": "Journal A", "article_type": "Research"},
  {"journal": "journal a", "article_type": "research"}
]`
	require.NoError(t, os.WriteFile(p.Catalog, []byte(dup), 0o600))
	out, err = execute(t, NewValidateCommand(), "catalog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog has 1 issue")
	assert.Contains(t, out, "Entry 1: duplicate of entry 0")
}

func TestHistory(t *testing.T) {
	p := setupProject(t)

	out, err := execute(t, NewHistoryCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No saved runs.")

	useJSON(t)
	out, err = execute(t, NewAnalyzeCommand(), p.Manuscript)
	require.NoError(t, err)
	var analyzed analyzeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &analyzed))
	require.NotEmpty(t, analyzed.RunID)

	out, err = execute(t, NewHistoryCommand())
	require.NoError(t, err)
	var runs []state.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, analyzed.RunID, runs[0].ID)
	assert.Equal(t, "paper.md", runs[0].Manuscript)
	assert.Equal(t, 2, runs[0].AcceptedCount)
	assert.Equal(t, 1, runs[0].RejectedCount)

	out, err = execute(t, NewHistoryCommand(), analyzed.RunID)
	require.NoError(t, err)
	var detail state.RunDetail
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	assert.Equal(t, analyzed.AcceptedJournals, detail.Result.AcceptedJournals)
	assert.Equal(t, analyzed.RequiredChanges, detail.Result.RequiredChanges)

	config.GetCurrentConfig().OutputFormat = "markdown"
	out, err = execute(t, NewHistoryCommand(), analyzed.RunID)
	require.NoError(t, err)
	assert.Contains(t, out, "# Analysis: paper.md")
	assert.Contains(t, out, "Run "+analyzed.RunID)

	_, err = execute(t, NewHistoryCommand(), "no-such-run")
	assert.ErrorIs(t, err, state.ErrRunNotFound)
}

func TestRules(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewRulesCommand(), "--format", "markdown", "-V")
	require.NoError(t, err)
	assert.Contains(t, out, "# Fit Rules")
	assert.Contains(t, out, "**GF01** - structure (`error`, field `structure`)")
	assert.Contains(t, out, "**GF02** - word-limit")
	assert.Contains(t, out, "**GF03** - abstract-limit")

	out, err = execute(t, NewRulesCommand(), "gf02", "--format", "json")
	require.NoError(t, err)
	var rule ruleStatus
	require.NoError(t, json.Unmarshal([]byte(out), &rule))
	assert.Equal(t, "GF02", rule.ID)
	assert.True(t, rule.Enabled)

	_, err = execute(t, NewRulesCommand(), "XX99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = execute(t, NewRulesCommand(), "--format", "yaml")
	assert.Error(t, err)
}

func TestRules_ConfiguredState(t *testing.T) {
	setupProject(t)
	cfg := config.GetCurrentConfig()
	cfg.Fit.Disabled = []string{"GF03"}
	cfg.Fit.Severity = map[string]core.Severity{"GF02": core.SeverityWarning}

	out, err := execute(t, NewRulesCommand(), "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "**GF02** - word-limit (`warning`")
	assert.Contains(t, out, "**GF03** - abstract-limit (`disabled`")
}

func TestCompleteManuscript(t *testing.T) {
	exts, directive := completeManuscript(NewAnalyzeCommand(), nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)
	assert.Contains(t, exts, "docx")
	assert.Contains(t, exts, "md")
	assert.NotContains(t, exts, ".docx")

	exts, directive = completeManuscript(NewAnalyzeCommand(), []string{"paper.md"}, "")
	assert.Nil(t, exts)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestOpenStore_LogsSchemaVersion(t *testing.T) {
	p := setupProject(t)
	logger, logs := itestutil.NewBufferLogger()
	cmdCtx := &CommandContext{Cfg: config.GetCurrentConfig(), Logger: logger}

	store, err := cmdCtx.OpenStore(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Contains(t, logs.String(), "run history opened")
	assert.Contains(t, logs.String(), "schema_version=1")
	assert.FileExists(t, filepath.Join(p.Dir, ".articlecheck", "history.db"))
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.md")
	require.NoError(t, os.WriteFile(path, []byte("# Intro\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, itestutil.NewTestLogger(t), func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	other := filepath.Join(dir, "notes.txt")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(other, []byte("ignored"), 0o600)
		_ = os.WriteFile(path, []byte("# Intro\n\nmore words\n"), 0o600)
		select {
		case <-changed:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not stop after cancel")
	}
}
