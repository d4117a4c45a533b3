package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
	"github.com/DLii-Research/snake-fungal-disease/internal/runlog"
	"github.com/DLii-Research/snake-fungal-disease/internal/testutil"
)

// Result holds the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	// NotReady reports whether the precondition check rejected the launch.
	NotReady bool

	// Argv is the assembled command line (empty when NotReady).
	Argv []string

	// Spawns is the number of child processes the executor saw.
	Spawns int

	// ExitCode is the propagated exit status.
	ExitCode int

	// Errors lists every failed expectation.
	Errors []string
}

// Run executes a scenario and evaluates its expectations.
//
// Each scenario runs against a fresh recording executor and a fresh in-memory
// run log; no real process is spawned and no state leaks between scenarios.
// Run IDs are fixed, so run-log contents are deterministic too.
func Run(scenario *Scenario) (*Result, error) {
	store, err := runlog.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("create in-memory run log: %w", err)
	}
	defer store.Close()

	exec := &testutil.RecorderExecutor{
		Result: launcher.Result{ExitCode: scenario.ChildExitCode},
	}

	env := launcher.FromOS(testutil.MapLookup(scenario.Env))
	l := launcher.New(env,
		launcher.WithExecutor(exec),
		launcher.WithRunLog(store),
		launcher.WithRunIDGenerator(launcher.NewFixedGenerator("run-"+scenario.Name)),
		launcher.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	result := &Result{}
	outcome, launchErr := l.Launch(context.Background(), launcher.Request{
		Job:   scenario.Job.toJob(),
		Extra: scenario.Extra,
	})

	result.Spawns = exec.Calls()
	switch {
	case launchErr == nil:
		result.Argv = outcome.Argv
		result.ExitCode = outcome.ExitCode
	case launcher.IsNotReady(launchErr):
		result.NotReady = true
	default:
		return nil, fmt.Errorf("scenario %s: unexpected launch error: %w", scenario.Name, launchErr)
	}

	evaluate(scenario, result)
	return result, nil
}

// evaluate checks every expectation, collecting all failures.
func evaluate(scenario *Scenario, result *Result) {
	expect := scenario.Expect

	if expect.NotReady != result.NotReady {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"expected not_ready=%v, got %v", expect.NotReady, result.NotReady))
	}

	wantSpawns := 1
	if expect.NotReady {
		wantSpawns = 0
	}
	if expect.Spawns != nil {
		wantSpawns = *expect.Spawns
	}
	if result.Spawns != wantSpawns {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"expected %d spawn(s), got %d", wantSpawns, result.Spawns))
	}

	if !expect.NotReady && result.ExitCode != expect.ExitCode {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"expected exit code %d, got %d", expect.ExitCode, result.ExitCode))
	}

	assertArgvOrder(expect.ArgvContains, result)

	result.Pass = len(result.Errors) == 0
}

// assertArgvOrder checks that the fragments appear in the command line in the
// given relative order.
func assertArgvOrder(fragments []string, result *Result) {
	pos := 0
	for _, fragment := range fragments {
		found := -1
		for i := pos; i < len(result.Argv); i++ {
			if result.Argv[i] == fragment {
				found = i
				break
			}
		}
		if found < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"argv missing %q at or after position %d (argv: %s)",
				fragment, pos, strings.Join(result.Argv, " ")))
			return
		}
		pos = found + 1
	}
}
