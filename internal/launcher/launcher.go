package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DLii-Research/snake-fungal-disease/internal/jobspec"
	"github.com/DLii-Research/snake-fungal-disease/internal/runlog"
)

// Launcher assembles and runs training-job invocations.
//
// All collaborators are injected; the zero value is not usable. New fills in
// production defaults (real process executor, UUIDv7 run IDs, no run log).
type Launcher struct {
	env    Environment
	exec   Executor
	log    *runlog.Store // optional; nil disables run recording
	idGen  RunIDGenerator
	logger *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithExecutor overrides the process executor (used by tests and dry runs).
func WithExecutor(e Executor) Option {
	return func(l *Launcher) { l.exec = e }
}

// WithRunLog enables launch recording to the given store.
func WithRunLog(s *runlog.Store) Option {
	return func(l *Launcher) { l.log = s }
}

// WithRunIDGenerator overrides the run ID generator (for deterministic tests).
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(l *Launcher) { l.idGen = g }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// New creates a Launcher for the given environment.
func New(env Environment, opts ...Option) *Launcher {
	l := &Launcher{
		env:   env,
		exec:  &ProcessExecutor{},
		idGen: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Request names a job to launch plus the caller's extra arguments,
// forwarded verbatim after the fixed pairs.
type Request struct {
	Job   jobspec.Job
	Extra []string
}

// Outcome reports a finished (or failed-to-start) launch.
type Outcome struct {
	// RunID correlates this launch with its run-log row.
	RunID string

	// LaunchID is the content-addressed ID of the assembled command line.
	LaunchID string

	// Argv is the complete command line, argv[0] included.
	Argv []string

	// ExitCode is the child's exit status, propagated unchanged.
	ExitCode int

	// Duration is the child's wall-clock runtime.
	Duration time.Duration
}

// Assemble builds the child command for a request without executing it.
//
// The result is deterministic: fixed pairs in catalog order, each exactly
// once, then the caller's extras in their original relative order. Assemble
// does NOT require a ready environment - rendering a command line is safe
// before bootstrap; only launching is gated.
func (l *Launcher) Assemble(req Request) (Command, error) {
	args := NewArgList()
	for _, p := range req.Job.Args {
		value, err := l.env.Expand(p.Value)
		if err != nil {
			return Command{}, wrapJob(err, req.Job.Name)
		}
		if err := args.AddPair(p.Flag, value); err != nil {
			return Command{}, wrapJob(err, req.Job.Name)
		}
	}
	args.AddTrailing(req.Extra...)

	script := l.env.ScriptPath(req.Job.Script)
	return Command{
		Path: l.env.Interpreter,
		Args: append([]string{script}, args.Argv()...),
	}, nil
}

// Launch performs the precondition check, assembles the command line, records
// the launch, runs the child, and records its completion.
//
// Either the check fails and nothing downstream runs, or exactly one child
// process is spawned. The child's exit status comes back unchanged in
// Outcome.ExitCode; Launch returns an error only for launcher-owned failures
// (not ready, bad arguments, spawn failure, cancellation).
func (l *Launcher) Launch(ctx context.Context, req Request) (*Outcome, error) {
	if err := l.env.Check(); err != nil {
		return nil, err
	}

	cmd, err := l.Assemble(req)
	if err != nil {
		return nil, err
	}

	script := l.env.ScriptPath(req.Job.Script)
	outcome := &Outcome{
		RunID:    l.idGen.Generate(),
		LaunchID: jobspec.LaunchID(req.Job.Name, script, cmd.Argv()),
		Argv:     cmd.Argv(),
	}

	l.logger.Info("launching job",
		"job", req.Job.Name,
		"run_id", outcome.RunID,
		"script", script,
		"extra_args", len(req.Extra))

	if l.log != nil {
		launch := runlog.Launch{
			RunID:     outcome.RunID,
			LaunchID:  outcome.LaunchID,
			JobName:   req.Job.Name,
			JobHash:   jobspec.JobHash(&req.Job),
			Argv:      outcome.Argv,
			StartedAt: time.Now(),
		}
		if err := l.log.WriteLaunch(ctx, launch); err != nil {
			return nil, fmt.Errorf("record launch: %w", err)
		}
	}

	res, runErr := l.exec.Run(ctx, cmd)
	outcome.ExitCode = res.ExitCode
	outcome.Duration = res.Duration

	if l.log != nil {
		completion := runlog.Completion{
			RunID:      outcome.RunID,
			ExitCode:   res.ExitCode,
			Duration:   res.Duration,
			FinishedAt: time.Now(),
		}
		if err := l.log.WriteCompletion(ctx, completion); err != nil {
			l.logger.Error("recording completion failed", "run_id", outcome.RunID, "error", err)
		}
	}

	if runErr != nil {
		return outcome, runErr
	}

	l.logger.Info("job finished",
		"job", req.Job.Name,
		"run_id", outcome.RunID,
		"exit_code", outcome.ExitCode,
		"duration", outcome.Duration)
	return outcome, nil
}

// wrapJob attaches the job name to a LaunchError, leaving other errors alone.
func wrapJob(err error, job string) error {
	if le, ok := err.(*LaunchError); ok && le.Job == "" {
		le.Job = job
	}
	return err
}
