package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/fit"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Verbose bool   // Show descriptions
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List guideline fit rules",
		Long: `List the rules used to decide whether a manuscript fits a guideline,
with their effective severity and whether they are enabled.

Rules can be disabled or given another severity in articlecheck.yaml:

  fit:
    disabled: [GF03]
    severity:
      GF02: warning

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  articlecheck rules

  # Show details for a specific rule
  articlecheck rules GF02

  # Output as JSON
  articlecheck rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show rule descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// ruleStatus is a rule with its configured state.
type ruleStatus struct {
	core.RuleInfo
	Severity core.Severity `json:"severity"`
	Enabled  bool          `json:"enabled"`
}

func ruleStatuses(cfg *fit.Config) []ruleStatus {
	infos := fit.AllRules()
	out := make([]ruleStatus, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleStatus{
			RuleInfo: info,
			Severity: cfg.GetSeverity(info.ID, info.DefaultSeverity),
			Enabled:  !cfg.IsDisabled(info.ID),
		})
	}
	return out
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	if err := cmdCtx.WithFormat(cmd, opts.Format); err != nil {
		return err
	}
	r := cmdCtx.Renderer
	rules := ruleStatuses(cmdCtx.Cfg.FitRules())

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rules)
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules, opts.Verbose)
	default:
		listRulesText(r, rules, opts.Verbose)
	}
	return nil
}

func listRulesText(r *output.Renderer, rules []ruleStatus, verbose bool) {
	styles := r.Styles()

	r.Println(styles.Header1.Render(fmt.Sprintf("Fit Rules (%d)", len(rules))))
	r.Println("")
	for _, rule := range rules {
		state := severityStyle(styles, rule.Severity).Render(rule.Severity.String())
		if !rule.Enabled {
			state = styles.Muted.Render("disabled")
		}
		r.Printf("  %s  %-16s %s  %s\n",
			styles.Muted.Render(rule.ID),
			rule.Name,
			state,
			styles.Muted.Render("["+rule.Field+"]"),
		)
		if verbose {
			r.Println(styles.Muted.Render("      " + rule.Description))
		}
	}
	r.Println("")
	r.Println(styles.Muted.Render("Use 'articlecheck rules <rule-id>' for details"))
}

func listRulesMarkdown(r *output.Renderer, rules []ruleStatus, verbose bool) {
	r.Println("# Fit Rules")
	r.Println("")
	for _, rule := range rules {
		state := rule.Severity.String()
		if !rule.Enabled {
			state = "disabled"
		}
		r.Printf("- **%s** - %s (`%s`, field `%s`)\n", rule.ID, rule.Name, state, rule.Field)
		if verbose {
			r.Println("  " + rule.Description)
		}
	}
	r.Println("")
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	if err := cmdCtx.WithFormat(cmd, opts.Format); err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var rule *ruleStatus
	for _, rs := range ruleStatuses(cmdCtx.Cfg.FitRules()) {
		if strings.EqualFold(rs.ID, ruleID) {
			rule = &rs
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rule)
	}

	enabled := "yes"
	if !rule.Enabled {
		enabled = "no"
	}
	r.Header(1, rule.ID+": "+rule.Name)
	r.Println(rule.Description)
	r.Println("")
	r.Table([]string{"Property", "Value"}, [][]string{
		{"Guideline field", rule.Field},
		{"Default severity", rule.DefaultSeverity.String()},
		{"Severity", rule.Severity.String()},
		{"Enabled", enabled},
	})
	return nil
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
