package launcher

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessExecutor_ExitCodeZero(t *testing.T) {
	var stdout bytes.Buffer
	e := &ProcessExecutor{Stdout: &stdout}

	res, err := e.Run(context.Background(), Command{
		Path: "sh",
		Args: []string{"-c", "echo launched"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "launched\n", stdout.String())
}

func TestProcessExecutor_NonZeroExitIsNotAnError(t *testing.T) {
	e := &ProcessExecutor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	res, err := e.Run(context.Background(), Command{
		Path: "sh",
		Args: []string{"-c", "exit 17"},
	})
	require.NoError(t, err, "a failing child is a result, not a launcher error")
	assert.Equal(t, 17, res.ExitCode)
}

func TestProcessExecutor_SpawnFailure(t *testing.T) {
	e := &ProcessExecutor{}

	_, err := e.Run(context.Background(), Command{Path: "/nonexistent/interpreter"})
	require.Error(t, err)

	var le *LaunchError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeSpawnFailed, le.Code)
}

func TestProcessExecutor_CancellationKillsChild(t *testing.T) {
	e := &ProcessExecutor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := e.Run(ctx, Command{
		Path: "sh",
		Args: []string{"-c", "sleep 30"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second, "child must be torn down promptly")
}
