package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "sfd", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"launch", "render", "submit", "jobs", "validate", "history"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "jobs"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_JobsEndToEnd(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--specs", "testdata/specs", "jobs"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "dnabert-taxonomy")
	assert.Contains(t, out.String(), "setbert-pretrain")
}

func TestRootCommand_JobsJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--specs", "testdata/specs", "--format", "json", "jobs"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   []JobSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "dnabert-taxonomy", resp.Data[0].Name)
	assert.Equal(t, 6, resp.Data[0].FixedArgs)
}

func TestRootCommand_UnknownJobExitCode(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--specs", "testdata/specs", "render", "no-such-job"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
