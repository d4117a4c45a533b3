package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
	"github.com/DLii-Research/snake-fungal-disease/internal/testutil"
)

func testCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func launchOptions(env map[string]string, exec launcher.Executor) *LaunchOptions {
	return &LaunchOptions{
		RootOptions: &RootOptions{Format: "text", SpecsDir: "testdata/specs"},
		Lookup:      testutil.MapLookup(env),
		Executor:    exec,
		RunIDGen:    launcher.NewFixedGenerator("run-test"),
	}
}

func TestRunLaunch_SpawnsJobWithFixedArgs(t *testing.T) {
	exec := &testutil.RecorderExecutor{}
	opts := launchOptions(testutil.ReadyEnv(), exec)

	err := runLaunch(opts, "dnabert-taxonomy", nil, testCommand())
	require.NoError(t, err)

	require.Equal(t, 1, exec.Calls())
	cmd := exec.Commands()[0]
	assert.Equal(t, []string{
		"python3",
		"/opt/sfd/scripts/finetuning/dnabert_taxonomy.py",
		"--name", "dnabert-taxonomy",
		"--project", "snake-fungal-disease",
		"--dnabert", "dnabert-pretrain:latest",
		"--sequences-db", "/data/sfd/sequences.fasta.db",
		"--taxonomy-db", "/data/sfd/taxonomy.tsv.db",
		"--rank-depth", "6",
	}, cmd.Argv())
}

func TestRunLaunch_ForwardsExtraArgsVerbatim(t *testing.T) {
	exec := &testutil.RecorderExecutor{}
	opts := launchOptions(testutil.ReadyEnv(), exec)

	err := runLaunch(opts, "setbert-pretrain", []string{"--epochs", "10", "--resume"}, testCommand())
	require.NoError(t, err)

	require.Equal(t, 1, exec.Calls())
	argv := exec.Commands()[0].Argv()
	assert.Equal(t, []string{
		"python3",
		"/opt/sfd/scripts/pretraining/setbert_pretrain.py",
		"--subsample-size", "1000",
		"--epochs", "10", "--resume",
	}, argv)
}

func TestRunLaunch_NotReady(t *testing.T) {
	exec := &testutil.RecorderExecutor{}
	opts := launchOptions(map[string]string{}, exec)

	err := runLaunch(opts, "dnabert-taxonomy", nil, testCommand())
	require.Error(t, err)
	assert.Equal(t, ExitNotReady, GetExitCode(err))
	assert.Equal(t, 0, exec.Calls(), "nothing may be spawned when the environment is not ready")
}

func TestRunLaunch_PropagatesChildExitStatus(t *testing.T) {
	exec := &testutil.RecorderExecutor{Result: launcher.Result{ExitCode: 17}}
	opts := launchOptions(testutil.ReadyEnv(), exec)

	err := runLaunch(opts, "dnabert-taxonomy", nil, testCommand())
	require.Error(t, err)
	assert.Equal(t, 17, GetExitCode(err))
	assert.Empty(t, err.Error(), "child failures carry only the exit status, no extra message")
	assert.Equal(t, 1, exec.Calls())
}

func TestRunLaunch_UnknownJob(t *testing.T) {
	exec := &testutil.RecorderExecutor{}
	opts := launchOptions(testutil.ReadyEnv(), exec)

	err := runLaunch(opts, "no-such-job", nil, testCommand())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no-such-job")
	assert.Equal(t, 0, exec.Calls())
}

func TestRunLaunch_UnknownPlaceholder(t *testing.T) {
	exec := &testutil.RecorderExecutor{}
	opts := launchOptions(testutil.ReadyEnv(), exec)
	opts.SpecsDir = "testdata/unknownplaceholder"

	err := runLaunch(opts, "bad-placeholder", nil, testCommand())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "datasets")
	assert.Equal(t, 0, exec.Calls())
}

func TestRunLaunch_RecordsRunLog(t *testing.T) {
	exec := &testutil.RecorderExecutor{}
	opts := launchOptions(testutil.ReadyEnv(), exec)
	opts.Database = t.TempDir() + "/runs.db"

	err := runLaunch(opts, "dnabert-taxonomy", nil, testCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, exec.Calls())
	assert.FileExists(t, opts.Database)
}

func TestNewLaunchCommand_Flags(t *testing.T) {
	cmd := NewLaunchCommand(&RootOptions{})

	assert.NotNil(t, cmd.Flags().Lookup("db"))
	assert.NotNil(t, cmd.Flags().Lookup("grace"))
	assert.Equal(t, launcher.DefaultGrace.String(), cmd.Flags().Lookup("grace").DefValue)
}
