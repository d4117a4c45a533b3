// Package slurm integrates the launcher with the SLURM batch scheduler.
//
// Two concerns live here: reading the scheduler's environment (job identity
// and the allocation end time that feeds the grace-period cancellation), and
// rendering submission scripts whose #SBATCH directives request the
// early-interrupt signal before the time limit.
package slurm

import (
	"strconv"
	"time"

	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
)

// Scheduler environment variables read by the launcher.
const (
	EnvJobID   = "SLURM_JOB_ID"
	EnvJobName = "SLURM_JOB_NAME"

	// EnvJobEndTime is the allocation end time in unix seconds.
	EnvJobEndTime = "SLURM_JOB_END_TIME"
)

// BatchEnv describes the surrounding scheduler allocation, if any.
type BatchEnv struct {
	// JobID is the scheduler's job ID. Empty outside an allocation.
	JobID string

	// JobName is the scheduler's job name.
	JobName string

	// EndTime is when the allocation expires. Zero when unknown, which
	// disables the grace-period deadline (interactive runs).
	EndTime time.Time
}

// InAllocation reports whether the process runs under the scheduler.
func (e BatchEnv) InAllocation() bool {
	return e.JobID != ""
}

// ParseEnv reads the scheduler allocation from the given lookup.
//
// A missing or malformed end time yields a zero EndTime rather than an error:
// the launcher must still work on machines without a scheduler.
func ParseEnv(lookup launcher.LookupFunc) BatchEnv {
	var env BatchEnv

	if v, ok := lookup(EnvJobID); ok {
		env.JobID = v
	}
	if v, ok := lookup(EnvJobName); ok {
		env.JobName = v
	}
	if v, ok := lookup(EnvJobEndTime); ok {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs > 0 {
			env.EndTime = time.Unix(secs, 0)
		}
	}
	return env
}
