package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/articlecheck/internal/cli/output"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List or show saved analysis runs",
		Long: `Every 'articlecheck analyze' run is recorded in the history database
(state_path in articlecheck.yaml) unless --no-save is given. Without an
argument the most recent runs are listed; with a run ID the full result of
that run is shown.`,
		Example: `  articlecheck history
  articlecheck history --limit 5
  articlecheck history 1f0c6f7e-8a2b-4c1d-9e3f-5a6b7c8d9e0f -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRun(cmd, args[0])
			}
			return listRuns(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")

	return cmd
}

func listRuns(cmd *cobra.Command, opts *HistoryOptions) error {
	ctx := commandContext(cmd)
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, opts.Limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}

	r.Header(1, "Run history")
	if len(runs) == 0 {
		r.Muted("No saved runs. Run 'articlecheck analyze <manuscript>' to record one.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.Manuscript,
			run.CreatedAt.Local().Format(time.DateTime),
			strconv.Itoa(run.TotalWords),
			strconv.Itoa(run.AcceptedCount),
			strconv.Itoa(run.RejectedCount),
		})
	}
	r.Table([]string{"ID", "Manuscript", "Created", "Words", "Accepted", "Rejected"}, rows)
	return nil
}

func showRun(cmd *cobra.Command, id string) error {
	ctx := commandContext(cmd)
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	detail, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(detail)
	}

	renderAnalysis(r, detail.Manuscript, detail.Result)
	r.Muted("Run " + detail.ID + " at " + detail.CreatedAt.Local().Format(time.DateTime))
	return nil
}
