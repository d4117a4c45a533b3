package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a scenario result as stable text for golden comparison.
//
// One field per line, command line verbatim. The snapshot deliberately leaves
// out durations and anything else wall-clock dependent.
func Snapshot(scenario *Scenario, result *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", scenario.Name)
	fmt.Fprintf(&b, "not_ready: %v\n", result.NotReady)
	fmt.Fprintf(&b, "spawns: %d\n", result.Spawns)
	if !result.NotReady {
		fmt.Fprintf(&b, "exit_code: %d\n", result.ExitCode)
		fmt.Fprintf(&b, "argv: %s\n", strings.Join(result.Argv, " "))
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, failure := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Snapshot(scenario, result))

	return nil
}
