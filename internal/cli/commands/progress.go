package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
	"github.com/leapstack-labs/articlecheck/pkg/checklist"
)

// NewProgressCommand creates the progress command.
func NewProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [checklist]",
		Short: "Show completion of a submission checklist",
		Long: `Print the completion percentage of each top-level task of a checklist
and the overall percentage.

A task counts 100% when done, its explicit percent when set, and otherwise
the mean of its subtasks. Without an argument the configured
manuscript.checklist is used.`,
		Example: `  articlecheck progress
  articlecheck progress checklist.yaml -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runProgress(cmd, path)
		},
	}
}

type taskProgress struct {
	Item    string  `json:"item"`
	Percent float64 `json:"percent"`
}

type progressJSON struct {
	Overall float64        `json:"overall"`
	Tasks   []taskProgress `json:"tasks"`
}

func runProgress(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if path == "" {
		path = cmdCtx.Cfg.Manuscript.Checklist
	}
	cl, err := readChecklist(path)
	if err != nil {
		return err
	}

	report := progressJSON{Overall: cl.ComputedPercent(), Tasks: make([]taskProgress, 0, len(cl.Tasks))}
	for _, t := range cl.Tasks {
		report.Tasks = append(report.Tasks, taskProgress{Item: t.Item, Percent: t.ComputedPercent()})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(report)
	}

	r.Header(1, "Progress: "+filepath.Base(path))
	rows := make([][]string, 0, len(report.Tasks))
	for _, t := range report.Tasks {
		rows = append(rows, []string{t.Item, r.ProgressBar(t.Percent, output.DefaultBarWidth), output.Percent(t.Percent)})
	}
	r.Table([]string{"Task", "Progress", "Percent"}, rows)
	r.Printf("Overall: %s %s\n", r.ProgressBar(report.Overall, output.DefaultBarWidth), output.Percent(report.Overall))
	return nil
}

// readChecklist reads and validates a YAML or JSON checklist file.
func readChecklist(path string) (*checklist.Checklist, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse checklist json: %w", err)
		}
		if err := checklist.Validate(raw); err != nil {
			return nil, fmt.Errorf("invalid checklist %s: %w", filepath.Base(path), err)
		}
		return checklist.FromMap(raw)
	}

	raw, _, err := checklist.DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	if err := checklist.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid checklist %s: %w", filepath.Base(path), err)
	}
	return checklist.FromYAML(data)
}
