// Package launcher assembles and supervises training-job invocations.
//
// The launcher replaces a pile of batch shell scripts with one explicit
// pipeline:
//
//  1. Environment: typed configuration built from an injected lookup (no
//     process-global state). Check() gates every launch - if the bootstrap
//     step has not run, nothing downstream is attempted.
//  2. ArgList: ordered flag/value pairs plus a verbatim trailing list,
//     validated at construction. No shell interpolation anywhere.
//  3. Executor: spawns exactly one child process per launch, propagating its
//     exit status unchanged. Cancellation kills the process group.
//  4. GraceContext: the scheduler's interrupt-before-deadline notification
//     modeled as a cancellation token, testable without a real scheduler.
//
// GUARANTEE: no partial execution. Either the precondition check fails and no
// child is spawned, or exactly one downstream invocation occurs. Identical
// environment and arguments always assemble the identical command line.
package launcher
