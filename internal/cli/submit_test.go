package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSubmit_Stdout(t *testing.T) {
	opts := &SubmitOptions{
		RootOptions: &RootOptions{Format: "text", SpecsDir: "testdata/specs"},
		Grace:       2 * time.Minute,
	}
	cmd, out := captureCommand()

	err := runSubmit(opts, "dnabert-taxonomy", cmd)
	require.NoError(t, err)

	script := out.String()
	assert.Equal(t, "#!/bin/bash\n"+
		"#SBATCH --job-name=dnabert-taxonomy\n"+
		"#SBATCH --time=3-00:00:00\n"+
		"#SBATCH --partition=gpu\n"+
		"#SBATCH --gres=gpu:1\n"+
		"#SBATCH --mem=64G\n"+
		"#SBATCH --signal=B:USR1@120\n"+
		"\n"+
		"exec sfd launch dnabert-taxonomy -- \"$@\"\n", script)
}

func TestRunSubmit_WritesExecutableFile(t *testing.T) {
	opts := &SubmitOptions{
		RootOptions: &RootOptions{Format: "text", SpecsDir: "testdata/specs"},
		Output:      filepath.Join(t.TempDir(), "setbert.sbatch"),
		Grace:       time.Minute,
	}
	cmd, out := captureCommand()

	err := runSubmit(opts, "setbert-pretrain", cmd)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Wrote ")

	info, err := os.Stat(opts.Output)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "batch script should be executable")

	content, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "exec sfd launch setbert-pretrain")
	assert.Contains(t, string(content), "#SBATCH --signal=B:USR1@60")
}

func TestRunSubmit_UnknownJob(t *testing.T) {
	opts := &SubmitOptions{
		RootOptions: &RootOptions{Format: "text", SpecsDir: "testdata/specs"},
	}
	cmd, _ := captureCommand()

	err := runSubmit(opts, "nope", cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
