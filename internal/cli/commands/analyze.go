package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/analysis"
	"github.com/leapstack-labs/articlecheck/pkg/core"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Journal     string        // Restrict to one journal
	ArticleType string        // Restrict to one article type
	NoSave      bool          // Skip recording the run in history
	Watch       bool          // Re-run when the manuscript changes
	Debounce    time.Duration // Quiet period before a watched re-run
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <manuscript>",
		Short: "Check a manuscript against journal guidelines",
		Long: `Segment a manuscript into sections, count words per section and
evaluate it against every guideline in the catalog.

Journals the manuscript already fits are listed as accepted; every other
journal gets a list of required changes. Supported inputs are .docx, .md,
.html, .txt and section files (.yaml).

The journal and article type default to the manuscript's frontmatter and then
to manuscript.journal / manuscript.article_type in articlecheck.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Analyze against the whole catalog
  articlecheck analyze paper.docx

  # Only one journal
  articlecheck analyze paper.md --journal "Journal A"

  # Re-run on every save
  articlecheck analyze paper.md --watch

  # Machine-readable output without recording history
  articlecheck analyze paper.md -o json --no-save`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManuscript,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				return watchAnalyze(cmd, args[0], opts)
			}
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Journal, "journal", "j", "", "Only evaluate this journal")
	cmd.Flags().StringVarP(&opts.ArticleType, "article-type", "t", "", "Only evaluate this article type")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", false, "Do not record the run in history")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when the manuscript changes")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 200*time.Millisecond, "Quiet period before re-running in watch mode")

	return cmd
}

// analyzeJSON is the JSON shape of an analysis.
type analyzeJSON struct {
	Manuscript string `json:"manuscript"`
	RunID      string `json:"run_id,omitempty"`
	core.AnalysisResult
}

func runAnalyze(cmd *cobra.Command, path string, opts *AnalyzeOptions) error {
	ctx := commandContext(cmd)
	cmdCtx := NewCommandContext(cmd)
	return analyzeOnce(ctx, cmdCtx, path, opts)
}

func analyzeOnce(ctx context.Context, cmdCtx *CommandContext, path string, opts *AnalyzeOptions) error {
	doc, err := cmdCtx.LoadManuscript(ctx, path)
	if err != nil {
		return err
	}

	cat, err := cmdCtx.LoadCatalog()
	if err != nil {
		return err
	}

	journal, articleType := resolveTarget(cmdCtx, doc.Meta, opts)
	guidelines := cat.All()
	if journal != "" {
		guidelines = cat.Filter(journal, articleType)
		if len(guidelines) == 0 {
			_, err := FindGuideline(cat, journal, articleType)
			return err
		}
	}

	start := time.Now()
	result := analysis.Analyze(doc, guidelines, cmdCtx.AnalysisOptions()...)
	cmdCtx.Logger.Debug("analysis complete",
		"manuscript", doc.Name,
		"guidelines", len(guidelines),
		"accepted", len(result.AcceptedJournals),
		"duration", time.Since(start))

	var runID string
	if !opts.NoSave {
		runID, err = saveRun(ctx, cmdCtx, doc.Name, result)
		if err != nil {
			return err
		}
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(analyzeJSON{Manuscript: doc.Name, RunID: runID, AnalysisResult: result})
	}

	renderAnalysis(r, doc.Name, result)
	if runID != "" {
		r.Muted("Saved as run " + runID)
	}
	return nil
}

// resolveTarget picks the journal filter: flag, then frontmatter, then config.
func resolveTarget(cmdCtx *CommandContext, meta core.DocumentMeta, opts *AnalyzeOptions) (journal, articleType string) {
	journal, articleType = opts.Journal, opts.ArticleType
	if journal == "" {
		journal, articleType = meta.Journal, meta.ArticleType
	}
	if journal == "" {
		journal, articleType = cmdCtx.Cfg.Manuscript.Journal, cmdCtx.Cfg.Manuscript.ArticleType
	}
	return journal, articleType
}

func saveRun(ctx context.Context, cmdCtx *CommandContext, name string, result core.AnalysisResult) (string, error) {
	store, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	run, err := store.SaveRun(ctx, name, result)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	cmdCtx.Logger.Debug("saved run", "id", run.ID)
	return run.ID, nil
}

// renderAnalysis prints sections, accepted journals and change requests in
// text or markdown mode.
func renderAnalysis(r *output.Renderer, name string, result core.AnalysisResult) {
	r.Header(1, "Analysis: "+name)
	renderSectionTable(r, result.Sections)
	r.Printf("Total words: %d\n", result.TotalWords)
	if cats := result.Categories.Strings(); len(cats) > 0 {
		r.Printf("Categories: %s\n", strings.Join(cats, ", "))
	}
	r.Println("")

	r.Header(2, fmt.Sprintf("Accepted journals (%d)", len(result.AcceptedJournals)))
	if len(result.AcceptedJournals) == 0 {
		r.Muted("No journal accepts the manuscript as is.")
	}
	for _, j := range result.AcceptedJournals {
		r.StatusLine(j, "success", "")
	}
	r.Println("")

	if len(result.RequiredChanges) == 0 {
		return
	}
	r.Header(2, "Required changes for "+pluralize(len(result.RequiredChanges), "journal"))
	for _, j := range sortedJournals(result.RequiredChanges) {
		r.StatusLine(j, "warning", pluralize(len(result.RequiredChanges[j]), "change"))
		for _, change := range result.RequiredChanges[j] {
			r.Println("  - " + change)
		}
	}
	r.Println("")
}

func renderSectionTable(r *output.Renderer, sections []core.SectionSummary) {
	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{s.Title, s.Category.String(), strconv.Itoa(s.WordCount)})
	}
	r.Table([]string{"Section", "Category", "Words"}, rows)
}

func sortedJournals(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for j := range m {
		out = append(out, j)
	}
	sort.Strings(out)
	return out
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
