package slurm

import (
	"fmt"
	"strings"
	"time"

	"github.com/DLii-Research/snake-fungal-disease/internal/jobspec"
)

// ScriptOptions controls batch-script rendering.
type ScriptOptions struct {
	// Grace is the interrupt-before-deadline request: the scheduler delivers
	// SIGUSR1 to the batch step this long before the time limit.
	Grace time.Duration

	// LauncherPath is the launcher binary invoked inside the allocation.
	// Defaults to "sfd".
	LauncherPath string
}

// RenderScript produces the submission script for a job.
//
// Output is a pure function of the job definition and options, so rendered
// scripts are golden-testable. Only the validated job name is interpolated
// into the command line; extra arguments flow through "$@" untouched, which
// keeps shell quoting out of the launcher entirely.
func RenderScript(job jobspec.Job, opts ScriptOptions) string {
	launcherPath := opts.LauncherPath
	if launcherPath == "" {
		launcherPath = "sfd"
	}

	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&b, "#SBATCH --job-name=%s\n", job.Name)

	res := job.Resources
	if res.Time != "" {
		fmt.Fprintf(&b, "#SBATCH --time=%s\n", res.Time)
	}
	if res.Partition != "" {
		fmt.Fprintf(&b, "#SBATCH --partition=%s\n", res.Partition)
	}
	if res.GPUs > 0 {
		fmt.Fprintf(&b, "#SBATCH --gres=gpu:%d\n", res.GPUs)
	}
	if res.MemoryGB > 0 {
		fmt.Fprintf(&b, "#SBATCH --mem=%dG\n", res.MemoryGB)
	}
	if res.CPUs > 0 {
		fmt.Fprintf(&b, "#SBATCH --cpus-per-task=%d\n", res.CPUs)
	}
	if opts.Grace > 0 {
		// B: delivers the signal to the batch shell so the launcher (not
		// just srun) sees the grace notification.
		fmt.Fprintf(&b, "#SBATCH --signal=B:USR1@%d\n", int(opts.Grace.Seconds()))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "exec %s launch %s -- \"$@\"\n", launcherPath, job.Name)
	return b.String()
}
