package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DLii-Research/snake-fungal-disease/internal/runlog"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Job      string
	Limit    int
}

// RunRecord is the history command's per-run JSON payload.
type RunRecord struct {
	RunID     string `json:"run_id"`
	Job       string `json:"job"`
	LaunchID  string `json:"launch_id"`
	StartedAt string `json:"started_at"`
	ExitCode  *int   `json:"exit_code,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Argv      string `json:"argv"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded launches from the run log",
		Long: `Show recorded launches from the SQLite run log, oldest first.

Runs without an exit code were still in flight when last observed (or the
launcher died before recording the completion).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite run log (required)")
	cmd.Flags().StringVar(&opts.Job, "job", "", "only show runs of this job")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs to show (0 = all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	store, err := runlog.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run log", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	runs, err := store.ListRuns(ctx, opts.Job, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run log", err)
	}

	records := make([]RunRecord, 0, len(runs))
	for _, run := range runs {
		rec := RunRecord{
			RunID:     run.RunID,
			Job:       run.JobName,
			LaunchID:  run.LaunchID,
			StartedAt: run.StartedAt.Format("2006-01-02 15:04:05"),
			ExitCode:  run.ExitCode,
			Argv:      strings.Join(run.Argv, " "),
		}
		if run.Duration != nil {
			rec.Duration = run.Duration.String()
		}
		records = append(records, rec)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(records)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tJOB\tEXIT\tDURATION\tRUN ID")
	for _, rec := range records {
		exit := "-"
		if rec.ExitCode != nil {
			exit = fmt.Sprintf("%d", *rec.ExitCode)
		}
		duration := rec.Duration
		if duration == "" {
			duration = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.StartedAt, rec.Job, exit, duration, rec.RunID)
	}
	return w.Flush()
}
