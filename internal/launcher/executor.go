package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Command is a fully assembled child invocation.
type Command struct {
	// Path is the executable to run (the interpreter).
	Path string

	// Args are the arguments after argv[0].
	Args []string

	// Dir is the working directory. Empty means inherit.
	Dir string

	// Env is the child environment. Nil means inherit the full process
	// environment - training scripts need the tracker credentials, CUDA
	// variables, and whatever else the bootstrap step exported.
	Env []string
}

// Argv returns the complete argument vector including argv[0].
func (c Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// Result holds the outcome of a completed child process.
type Result struct {
	// ExitCode is the child's exit status, propagated unchanged.
	ExitCode int

	// Duration is the wall-clock time from start to exit.
	Duration time.Duration
}

// Executor runs assembled commands.
// Implemented by ProcessExecutor (production) and testutil recorders (tests).
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ProcessExecutor spawns real child processes.
//
// Stdio is inherited (or redirected via the writer fields) so training output
// streams straight through. On context cancellation the whole process group
// receives SIGTERM, giving the child its chance to checkpoint before the
// scheduler's hard kill; the executor then waits for the child to exit.
type ProcessExecutor struct {
	// Stdout and Stderr receive the child's output. Nil means os.Stdout /
	// os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Stdin feeds the child's input. Nil means no input.
	Stdin io.Reader
}

// Run spawns the command and waits for it to exit.
//
// A non-zero exit status is NOT an error: it is reported in Result.ExitCode
// so callers can propagate it unchanged. Run returns an error only when the
// child could not be started or was torn down by cancellation.
func (e *ProcessExecutor) Run(ctx context.Context, cmd Command) (Result, error) {
	child := exec.Command(cmd.Path, cmd.Args...)
	child.Dir = cmd.Dir
	child.Env = cmd.Env

	child.Stdout = e.Stdout
	if child.Stdout == nil {
		child.Stdout = os.Stdout
	}
	child.Stderr = e.Stderr
	if child.Stderr == nil {
		child.Stderr = os.Stderr
	}
	child.Stdin = e.Stdin

	// Own process group so cancellation can signal the whole tree.
	child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	start := time.Now()
	if err := child.Start(); err != nil {
		return Result{}, &LaunchError{
			Code:    ErrCodeSpawnFailed,
			Message: fmt.Sprintf("starting %s", cmd.Path),
			Err:     err,
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- child.Wait()
	}()

	select {
	case <-ctx.Done():
		// Grace period reached or caller interrupted: signal the process
		// group and wait for the child to exit on its own terms.
		if child.Process != nil {
			_ = syscall.Kill(-child.Process.Pid, syscall.SIGTERM)
		}
		err := <-done
		return exitResult(err, start), fmt.Errorf("launch cancelled: %w", ctx.Err())
	case err := <-done:
		res := exitResult(err, start)
		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return res, fmt.Errorf("waiting for %s: %w", cmd.Path, err)
			}
		}
		return res, nil
	}
}

// exitResult extracts the exit status from a Wait error.
func exitResult(err error, start time.Time) Result {
	res := Result{Duration: time.Since(start)}
	if err == nil {
		return res
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else {
		res.ExitCode = -1
	}
	return res
}
