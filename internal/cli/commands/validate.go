package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/guideline"
)

// NewValidateCommand creates the validate command and its subcommands.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check checklist and catalog files",
		Long: `Validate a checklist against the task schema, or check the guideline
catalog for missing keys, duplicate records and unparseable limits.`,
	}
	cmd.AddCommand(newValidateChecklistCommand(), newValidateCatalogCommand())
	return cmd
}

func newValidateChecklistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checklist [file]",
		Short: "Validate a checklist file",
		Example: `  articlecheck validate checklist
  articlecheck validate checklist checklist.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			path := cmdCtx.Cfg.Manuscript.Checklist
			if len(args) > 0 {
				path = args[0]
			}

			cl, err := readChecklist(path)
			if err != nil {
				return err
			}
			if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
				return cmdCtx.Renderer.JSON(map[string]any{"file": path, "valid": true, "tasks": len(cl.Tasks)})
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("%s is valid (%s)", path, pluralize(len(cl.Tasks), "task")))
			return nil
		},
	}
}

func newValidateCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "catalog",
		Short:   "Check the guideline catalog",
		Example: `  articlecheck validate catalog --catalog data/journal_guidelines.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.Renderer

			cat, err := cmdCtx.LoadCatalog()
			if err != nil {
				return err
			}
			issues := guideline.Validate(cat.All())

			if r.EffectiveMode() == output.ModeJSON {
				if issues == nil {
					issues = []guideline.Issue{}
				}
				if err := r.JSON(issues); err != nil {
					return err
				}
			} else {
				r.Header(1, fmt.Sprintf("Catalog: %s", pluralize(cat.Len(), "record")))
				for _, i := range issues {
					r.Warning(i.String())
				}
				if len(issues) == 0 {
					r.Success("No issues found")
				}
			}

			if len(issues) > 0 {
				return fmt.Errorf("catalog has %s", pluralize(len(issues), "issue"))
			}
			return nil
		},
	}
}
