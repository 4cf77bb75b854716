package commands

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/internal/loader"
	"github.com/leapstack-labs/articlecheck/pkg/manuscript"
)

// NewSectionsCommand creates the sections command.
func NewSectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sections [manuscript]",
		Short: "Show how a manuscript is split into sections",
		Long: `Segment a manuscript and print each section with its category and word
count, without evaluating any guideline.

Section files (.yaml) may declare a per-section word limit, shown as a usage
bar. Without an argument the configured manuscript.sections_file is used.`,
		Example: `  articlecheck sections paper.docx
  articlecheck sections manuscript.yaml -o json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeManuscript,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runSections(cmd, path)
		},
	}
}

// sectionRow is one section with its optional declared limit.
type sectionRow struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	WordCount int    `json:"word_count"`
	Limit     *int   `json:"limit,omitempty"`
}

func runSections(cmd *cobra.Command, path string) error {
	ctx := commandContext(cmd)
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if path == "" {
		path = cmdCtx.Cfg.Manuscript.SectionsFile
	}

	doc, err := cmdCtx.LoadManuscript(ctx, path)
	if err != nil {
		return err
	}

	limits := map[string]*int{}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		entries, err := loader.LoadSections(ctx, path)
		if err != nil {
			return err
		}
		for _, e := range entries {
			limits[e.Name] = e.Limit
		}
	}

	sections := manuscript.Segment(doc.Paragraphs)
	rows := make([]sectionRow, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, sectionRow{
			Title:     s.Title,
			Category:  s.Category.String(),
			WordCount: s.WordCount,
			Limit:     limits[s.Title],
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rows)
	}

	r.Header(1, "Sections: "+doc.Name)
	headers := []string{"Section", "Category", "Words"}
	if len(limits) > 0 {
		headers = append(headers, "Limit", "Usage")
	}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := []string{row.Title, row.Category, strconv.Itoa(row.WordCount)}
		if len(limits) > 0 {
			cells = append(cells, limitCells(r, row)...)
		}
		table = append(table, cells)
	}
	r.Table(headers, table)
	r.Printf("Total words: %d\n", manuscript.TotalWords(sections))
	return nil
}

func limitCells(r *output.Renderer, row sectionRow) []string {
	if row.Limit == nil || *row.Limit <= 0 {
		return []string{"-", ""}
	}
	pct := float64(row.WordCount) / float64(*row.Limit) * 100
	return []string{
		strconv.Itoa(*row.Limit),
		r.ProgressBar(pct, output.DefaultBarWidth) + " " + output.Percent(pct),
	}
}
