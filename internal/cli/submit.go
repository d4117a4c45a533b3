package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
	"github.com/DLii-Research/snake-fungal-disease/internal/slurm"
)

// SubmitOptions holds flags for the submit command.
type SubmitOptions struct {
	*RootOptions
	Output string
	Grace  time.Duration
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "submit <job>",
		Short: "Render the SLURM batch script for a job",
		Long: `Render the SLURM batch script for a job, with #SBATCH directives built from
the job's resource requests and a --signal directive requesting the
early-interrupt notification a grace period before the time limit.

The script is written to stdout (pipe into sbatch) or to --output.

Examples:
  sfd submit dnabert-taxonomy | sbatch
  sfd submit setbert-pretrain --output setbert.sbatch`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the script to a file instead of stdout")
	cmd.Flags().DurationVar(&opts.Grace, "grace", launcher.DefaultGrace, "requested signal lead time before the time limit")

	return cmd
}

func runSubmit(opts *SubmitOptions, jobName string, cmd *cobra.Command) error {
	catalog, err := loadCatalogStrict(opts.SpecsDir)
	if err != nil {
		return err
	}
	job, err := lookupJob(catalog, jobName)
	if err != nil {
		return err
	}

	script := slurm.RenderScript(job, slurm.ScriptOptions{Grace: opts.Grace})

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(script), 0o755); err != nil {
			return WrapExitError(ExitCommandError, "failed to write batch script", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.Output)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
