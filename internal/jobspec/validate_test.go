package jobspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() *Job {
	return &Job{
		Name:   "dnabert-taxonomy",
		Script: "scripts/finetuning/dnabert_taxonomy.py",
		Args: []Pair{
			{Flag: "--name", Value: "dnabert-taxonomy"},
			{Flag: "--project", Value: "snake-fungal-disease"},
			{Flag: "--dnabert", Value: "dnabert-pretrain:latest"},
			{Flag: "--sequences-db", Value: "${data}/sequences.fasta.db"},
			{Flag: "--taxonomy-db", Value: "${data}/taxonomy.tsv.db"},
			{Flag: "--rank-depth", Value: "6"},
		},
		Resources: Resources{Time: "3-00:00:00", GPUs: 1, MemoryGB: 64},
	}
}

func TestValidate_ValidJob(t *testing.T) {
	errs := Validate(validJob())
	assert.Empty(t, errs)
}

func TestValidate_NameRequired(t *testing.T) {
	job := validJob()
	job.Name = "  "

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrJobNameEmpty, errs[0].Code)
	assert.Equal(t, "name", errs[0].Field)
}

func TestValidate_NameFormat(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"dnabert-pretrain", true},
		{"setbert-pretrain", true},
		{"gan2", true},
		{"DNABert", false},
		{"dnabert_pretrain", false},
		{"-leading", false},
		{"trailing-", false},
	}
	for _, tc := range cases {
		job := validJob()
		job.Name = tc.name
		errs := Validate(job)
		if tc.valid {
			assert.Empty(t, errs, "name %q should be valid", tc.name)
		} else {
			require.NotEmpty(t, errs, "name %q should be rejected", tc.name)
			assert.Equal(t, ErrJobNameInvalid, errs[0].Code)
		}
	}
}

func TestValidate_ScriptRequired(t *testing.T) {
	job := validJob()
	job.Script = ""

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrScriptEmpty, errs[0].Code)
}

func TestValidate_ScriptMustBeRelative(t *testing.T) {
	job := validJob()
	job.Script = "/opt/scripts/train.py"

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrScriptAbsolute, errs[0].Code)
}

func TestValidate_FlagMustBeDashDashPrefixed(t *testing.T) {
	job := validJob()
	job.Args = append(job.Args, Pair{Flag: "-n", Value: "x"})

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrFlagInvalid, errs[0].Code)
}

func TestValidate_DuplicateFlagRejected(t *testing.T) {
	job := validJob()
	job.Args = append(job.Args, Pair{Flag: "--name", Value: "again"})

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateFlag, errs[0].Code)
}

func TestValidate_EmptyValueRejected(t *testing.T) {
	job := validJob()
	job.Args = append(job.Args, Pair{Flag: "--lr", Value: ""})

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrValueEmpty, errs[0].Code)
}

func TestValidate_NegativeResources(t *testing.T) {
	job := validJob()
	job.Resources.GPUs = -1

	errs := Validate(job)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrResourceInvalid, errs[0].Code)
	assert.Equal(t, "resources.gpus", errs[0].Field)
}

func TestNewCatalog_DuplicateNames(t *testing.T) {
	a := *validJob()
	b := *validJob()

	_, err := NewCatalog([]Job{a, b})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrDuplicateJobName, verr.Code)
}

func TestCatalog_LookupAndOrder(t *testing.T) {
	a := *validJob()
	b := *validJob()
	b.Name = "setbert-pretrain"

	c, err := NewCatalog([]Job{a, b})
	require.NoError(t, err)

	got, ok := c.Lookup("setbert-pretrain")
	require.True(t, ok)
	assert.Equal(t, "setbert-pretrain", got.Name)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	jobs := c.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "dnabert-taxonomy", jobs[0].Name)
	assert.Equal(t, "setbert-pretrain", jobs[1].Name)
}
