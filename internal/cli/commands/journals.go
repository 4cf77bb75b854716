package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

// NewJournalsCommand creates the journals command.
func NewJournalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "journals [query]",
		Aliases: []string{"catalog"},
		Short:   "List or search the guideline catalog",
		Long: `List every guideline in the catalog, or only those whose journal or
article type contains all words of the query. Matching ignores case and
accents, so "medica" finds "Revista Médica".`,
		Example: `  articlecheck journals
  articlecheck journals medica
  articlecheck journals "journal research" -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournals(cmd, strings.Join(args, " "))
		},
	}
	cmd.AddCommand(newJournalsAddCommand())
	return cmd
}

// JournalsAddOptions holds the fields of a new catalog record.
type JournalsAddOptions struct {
	Guideline core.Guideline
}

func newJournalsAddCommand() *cobra.Command {
	opts := &JournalsAddOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a guideline record to the catalog",
		Long: `Append one journal guideline to the catalog file. The catalog is created
when it does not exist yet. A record with the same journal and article type
is rejected. last_accessed defaults to today's date.`,
		Example: `  articlecheck journals add -j "Journal C" -t Letter --word-limit "800 words" \
    --structure "Introduction, Discussion"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJournalsAdd(cmd, opts)
		},
	}

	g := &opts.Guideline
	cmd.Flags().StringVarP(&g.Journal, "journal", "j", "", "Journal name (required)")
	cmd.Flags().StringVarP(&g.ArticleType, "article-type", "t", "", "Article type (required)")
	cmd.Flags().StringVar(&g.TitleLimit, "title-limit", "", "Title limit, e.g. \"150 characters\"")
	cmd.Flags().StringVar(&g.AbstractLimit, "abstract-limit", "", "Abstract limit, e.g. \"250 words\"")
	cmd.Flags().StringVar(&g.WordLimit, "word-limit", "", "Total word limit, e.g. \"3,000 words\"")
	cmd.Flags().StringVar(&g.FigureLimit, "figure-limit", "", "Figure limit")
	cmd.Flags().StringVar(&g.ReferenceLimit, "reference-limit", "", "Reference limit")
	cmd.Flags().StringVar(&g.Structure, "structure", "", "Required structure, e.g. \"Introduction, Methods, Results, Discussion\"")
	cmd.Flags().StringVar(&g.OtherRequirements, "other", "", "Other requirements")
	cmd.Flags().StringVar(&g.LastAccessed, "last-accessed", "", "Date the guideline was checked (default: today)")
	_ = cmd.MarkFlagRequired("journal")
	_ = cmd.MarkFlagRequired("article-type")

	return cmd
}

func runJournalsAdd(cmd *cobra.Command, opts *JournalsAddOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	g := opts.Guideline
	if g.LastAccessed == "" {
		g.LastAccessed = time.Now().Format(time.DateOnly)
	}
	if err := guideline.Append(cmdCtx.Cfg.Catalog, g); err != nil {
		return err
	}
	cmdCtx.Logger.Debug("guideline added", "catalog", cmdCtx.Cfg.Catalog, "journal", g.Journal, "article_type", g.ArticleType)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(g)
	}
	r.Success(fmt.Sprintf("Added %s to %s", g, cmdCtx.Cfg.Catalog))
	return nil
}

func runJournals(cmd *cobra.Command, query string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	cat, err := cmdCtx.LoadCatalog()
	if err != nil {
		return err
	}

	records := cat.All()
	if strings.TrimSpace(query) != "" {
		records = cat.Search(query)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if records == nil {
			records = []core.Guideline{}
		}
		return r.JSON(records)
	}

	title := fmt.Sprintf("Guidelines (%d of %d)", len(records), cat.Len())
	if query != "" {
		title = fmt.Sprintf("Guidelines matching %q (%d)", query, len(records))
	}
	r.Header(1, title)
	if len(records) == 0 {
		r.Muted("No guidelines found.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, g := range records {
		rows = append(rows, []string{
			g.Journal,
			g.ArticleType,
			orDash(g.WordLimit),
			orDash(g.AbstractLimit),
			orDash(g.Structure),
		})
	}
	r.Table([]string{"Journal", "Article type", "Word limit", "Abstract limit", "Structure"}, rows)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
