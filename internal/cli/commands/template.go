package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

// TemplateOptions holds options for the template command.
type TemplateOptions struct {
	Journal     string
	ArticleType string
	Format      string // yaml or json
	Out         string // Write to file instead of stdout
}

// NewTemplateCommand creates the template command.
func NewTemplateCommand() *cobra.Command {
	opts := &TemplateOptions{}
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate a submission checklist for a journal",
		Long: `Generate a checklist with one task per requirement declared by a journal
guideline. The result can be edited and tracked with 'articlecheck progress'.`,
		Example: `  articlecheck template --journal "Journal A" > checklist.yaml
  articlecheck template -j "Revista Médica" --format json
  articlecheck template -j "Journal B" -t Research --out checklist.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Journal, "journal", "j", "", "Journal name (default: manuscript.journal from config)")
	cmd.Flags().StringVarP(&opts.ArticleType, "article-type", "t", "", "Article type")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "yaml", "Checklist format: yaml, json")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the checklist to a file")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTemplate(cmd *cobra.Command, opts *TemplateOptions) error {
	cmdCtx := NewCommandContext(cmd)

	journal, articleType := opts.Journal, opts.ArticleType
	if journal == "" {
		journal, articleType = cmdCtx.Cfg.Manuscript.Journal, cmdCtx.Cfg.Manuscript.ArticleType
	}
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

	cl := guideline.Template(g)
	var data []byte
	switch opts.Format {
	case "yaml", "yml", "":
		data, err = cl.ToYAML()
	case "json":
		data, err = cl.ToJSON()
		data = append(data, '\n')
	default:
		return fmt.Errorf("invalid format %q (valid: yaml, json)", opts.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode checklist: %w", err)
	}

	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, data, 0o600); err != nil {
			return fmt.Errorf("failed to write checklist: %w", err)
		}
		cmdCtx.Renderer.Success(fmt.Sprintf("Wrote %d tasks for %s to %s", len(cl.Tasks), g.String(), opts.Out))
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
