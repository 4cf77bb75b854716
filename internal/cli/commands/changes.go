package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/analysis"
	"github.com/leapstack-labs/articlecheck/pkg/manuscript"
)

// ChangesOptions holds options for the changes command.
type ChangesOptions struct {
	Journal     string
	ArticleType string
}

// NewChangesCommand creates the changes command.
func NewChangesCommand() *cobra.Command {
	opts := &ChangesOptions{}
	cmd := &cobra.Command{
		Use:   "changes <manuscript>",
		Short: "List the changes a manuscript needs for one journal",
		Long: `Evaluate a manuscript against a single journal guideline and list the
changes required before it fits. An empty list means it already fits.

The journal defaults to the manuscript's frontmatter, then to
manuscript.journal in articlecheck.yaml.`,
		Example: `  articlecheck changes paper.docx --journal "Journal B"
  articlecheck changes paper.md -j "Journal B" -t Research -o json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManuscript,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChanges(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Journal, "journal", "j", "", "Journal name")
	cmd.Flags().StringVarP(&opts.ArticleType, "article-type", "t", "", "Article type (default: first listed for the journal)")

	return cmd
}

// changesJSON is the JSON shape of the changes command.
type changesJSON struct {
	Journal     string   `json:"journal"`
	ArticleType string   `json:"article_type"`
	Fits        bool     `json:"fits"`
	Changes     []string `json:"changes"`
}

func runChanges(cmd *cobra.Command, path string, opts *ChangesOptions) error {
	ctx := commandContext(cmd)
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	doc, err := cmdCtx.LoadManuscript(ctx, path)
	if err != nil {
		return err
	}

	journal, articleType := resolveTarget(cmdCtx, doc.Meta, &AnalyzeOptions{
		Journal:     opts.Journal,
		ArticleType: opts.ArticleType,
	})
	if journal == "" {
		return errJournalRequired
	}

	cat, err := cmdCtx.LoadCatalog()
	if err != nil {
		return err
	}
	g, err := FindGuideline(cat, journal, articleType)
	if err != nil {
		return err
	}

	sections := manuscript.Segment(doc.Paragraphs)
	changes := analysis.ChangeRequests(g, sections, cmdCtx.AnalysisOptions()...)
	if changes == nil {
		changes = []string{}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(changesJSON{
			Journal:     g.Journal,
			ArticleType: g.ArticleType,
			Fits:        len(changes) == 0,
			Changes:     changes,
		})
	}

	r.Header(1, "Changes for "+g.String())
	if len(changes) == 0 {
		r.Success(doc.Name + " already fits " + g.Journal)
		return nil
	}
	for _, c := range changes {
		r.StatusLine(c, "warning", "")
	}
	return nil
}
