// Package harness provides a conformance testing framework for the launcher.
//
// Scenarios are YAML files describing an environment, a job definition, and
// caller extras, plus expectations about the outcome: whether the launch is
// permitted, what the assembled command line contains, and how many child
// processes are spawned. Scenarios run against a recording executor - no real
// process is ever started - and each scenario gets a fresh in-memory run log,
// so runs are isolated and deterministic.
//
// Golden files capture the full assembled command line per scenario; any
// unintended change to argument assembly shows up as a golden diff.
package harness
