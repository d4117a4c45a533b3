package jobspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaunchID_Deterministic(t *testing.T) {
	argv := []string{"python3", "train.py", "--name", "dnabert-taxonomy", "--rank-depth", "6"}

	a := LaunchID("dnabert-taxonomy", "train.py", argv)
	b := LaunchID("dnabert-taxonomy", "train.py", argv)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex sha256
}

func TestLaunchID_SensitiveToArgv(t *testing.T) {
	base := []string{"python3", "train.py", "--rank-depth", "6"}
	other := []string{"python3", "train.py", "--rank-depth", "7"}

	assert.NotEqual(t,
		LaunchID("dnabert-taxonomy", "train.py", base),
		LaunchID("dnabert-taxonomy", "train.py", other))
}

func TestLaunchID_SensitiveToOrder(t *testing.T) {
	a := LaunchID("j", "s", []string{"--x", "1", "--y", "2"})
	b := LaunchID("j", "s", []string{"--y", "2", "--x", "1"})
	assert.NotEqual(t, a, b)
}

func TestLaunchID_NoBoundaryCollisions(t *testing.T) {
	// ["ab","c"] and ["a","bc"] must not hash identically.
	a := LaunchID("j", "s", []string{"ab", "c"})
	b := LaunchID("j", "s", []string{"a", "bc"})
	assert.NotEqual(t, a, b)
}

func TestLaunchID_UnicodeNormalization(t *testing.T) {
	// "é" as a single code point vs. "e" + combining acute accent.
	composed := "café"
	decomposed := "café"

	assert.Equal(t,
		LaunchID(composed, "s", nil),
		LaunchID(decomposed, "s", nil))
}

func TestJobHash_DetectsDrift(t *testing.T) {
	job := validJob()
	before := JobHash(job)

	job.Args[len(job.Args)-1].Value = "7" // rank depth changed
	assert.NotEqual(t, before, JobHash(job))
}

func TestDomainSeparation(t *testing.T) {
	// Same payload under different domains must differ.
	job := &Job{Name: "j", Script: "s"}
	assert.NotEqual(t, JobHash(job), LaunchID("j", "s", nil))
}
