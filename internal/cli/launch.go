package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
	"github.com/DLii-Research/snake-fungal-disease/internal/runlog"
	"github.com/DLii-Research/snake-fungal-disease/internal/slurm"
)

// LaunchOptions holds flags for the launch command.
type LaunchOptions struct {
	*RootOptions
	Database string
	Grace    time.Duration

	// Lookup allows overriding the environment lookup (for testing).
	// If nil, defaults to os.LookupEnv.
	Lookup launcher.LookupFunc

	// Executor allows overriding the process executor (for testing).
	// If nil, defaults to a real ProcessExecutor.
	Executor launcher.Executor

	// RunIDGen allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDGen launcher.RunIDGenerator
}

// NewLaunchCommand creates the launch command.
func NewLaunchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LaunchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "launch <job> [-- extra args...]",
		Short: "Launch a training job",
		Long: `Launch a training job from the catalog.

The launch environment must be bootstrapped first (source env/setup.sh);
otherwise nothing is spawned and the command exits with status 3.

Fixed catalog arguments are passed first, each exactly once; anything after
-- is forwarded to the training script verbatim, in the order given. The
child's exit status is propagated unchanged.

Under a SLURM allocation the launch is cancelled a grace period before the
allocation deadline (and on SIGUSR1), giving the training script time to
checkpoint.

Examples:
  sfd launch dnabert-taxonomy
  sfd launch dnabert-taxonomy -- --epochs 10
  sfd launch setbert-pretrain --db runs.db -- --batch-size 16`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite run log (empty disables recording)")
	cmd.Flags().DurationVar(&opts.Grace, "grace", launcher.DefaultGrace, "cancellation lead time before the allocation deadline")

	return cmd
}

func runLaunch(opts *LaunchOptions, jobName string, extra []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	catalog, err := loadCatalogStrict(opts.SpecsDir)
	if err != nil {
		return err
	}
	job, err := lookupJob(catalog, jobName)
	if err != nil {
		return err
	}

	// Grace-period cancellation: deadline from the scheduler allocation (if
	// any), early cancellation on SIGUSR1 or user interrupt.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	batch := slurm.ParseEnv(lookup)
	if batch.InAllocation() {
		logger.Info("running under scheduler allocation",
			"slurm_job_id", batch.JobID, "deadline", batch.EndTime, "grace", opts.Grace)
	}
	ctx, cancel := launcher.GraceContext(parentCtx, batch.EndTime, opts.Grace)
	defer cancel()
	ctx, stop := launcher.NotifyGrace(ctx, logger)
	defer stop()

	launchOpts := []launcher.Option{launcher.WithLogger(logger)}
	if opts.Executor != nil {
		launchOpts = append(launchOpts, launcher.WithExecutor(opts.Executor))
	}
	if opts.RunIDGen != nil {
		launchOpts = append(launchOpts, launcher.WithRunIDGenerator(opts.RunIDGen))
	}
	if opts.Database != "" {
		store, err := runlog.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run log", err)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Error("error closing run log", "error", closeErr)
			}
		}()
		launchOpts = append(launchOpts, launcher.WithRunLog(store))
	}

	env := launcher.FromOS(lookup)
	l := launcher.New(env, launchOpts...)

	outcome, err := l.Launch(ctx, launcher.Request{Job: job, Extra: extra})
	if err != nil {
		if launcher.IsNotReady(err) {
			return WrapExitError(ExitNotReady, "environment not ready", err)
		}
		var le *launcher.LaunchError
		if isLaunchConfigError(err, &le) {
			return WrapExitError(ExitCommandError, "invalid launch configuration", err)
		}
		return WrapExitError(ExitFailure, fmt.Sprintf("launch of %s failed", jobName), err)
	}

	// Propagate the child's exit status unchanged.
	if outcome.ExitCode != 0 {
		return NewExitError(outcome.ExitCode, "")
	}
	return nil
}

// isLaunchConfigError reports whether err is a pre-spawn configuration error
// (bad placeholder, bad argument) as opposed to a runtime launch failure.
func isLaunchConfigError(err error, target **launcher.LaunchError) bool {
	if !errors.As(err, target) {
		return false
	}
	code := (*target).Code
	return code == launcher.ErrCodeUnknownPlaceholder || code == launcher.ErrCodeBadArgument
}
