package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DLii-Research/snake-fungal-disease/internal/jobspec"
)

// Scenario defines a conformance test scenario for the launcher.
//
// A scenario fixes the launch environment and inputs, then asserts on the
// observable outcome: precondition handling, the assembled command line, and
// the number of spawned children.
type Scenario struct {
	// Name uniquely identifies this scenario (also names its golden file).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Env is the launch environment, as variable name to value.
	// Unlisted variables are unset.
	Env map[string]string `yaml:"env,omitempty"`

	// Job is the job definition under test.
	Job JobDef `yaml:"job"`

	// Extra are the caller-supplied arguments, forwarded verbatim.
	Extra []string `yaml:"extra,omitempty"`

	// ChildExitCode is the exit status the fake child reports.
	ChildExitCode int `yaml:"child_exit_code,omitempty"`

	// Expect holds the assertions.
	Expect Expect `yaml:"expect"`
}

// JobDef mirrors jobspec.Job for YAML scenarios.
type JobDef struct {
	Name   string    `yaml:"name"`
	Script string    `yaml:"script"`
	Args   []ArgPair `yaml:"args,omitempty"`
}

// ArgPair is a fixed flag/value pair in a scenario job definition.
type ArgPair struct {
	Flag  string `yaml:"flag"`
	Value string `yaml:"value"`
}

// Expect specifies the expected launch outcome.
type Expect struct {
	// NotReady asserts the precondition check fails and nothing is spawned.
	NotReady bool `yaml:"not_ready,omitempty"`

	// Spawns asserts the number of child processes spawned.
	// Defaults to 1 when NotReady is false, 0 when it is true.
	Spawns *int `yaml:"spawns,omitempty"`

	// ArgvContains asserts these fragments appear in the command line,
	// in the given relative order.
	ArgvContains []string `yaml:"argv_contains,omitempty"`

	// ExitCode asserts the outcome's propagated exit status.
	ExitCode int `yaml:"exit_code,omitempty"`
}

// toJob converts the YAML job definition into a jobspec.Job.
func (d JobDef) toJob() jobspec.Job {
	job := jobspec.Job{Name: d.Name, Script: d.Script}
	for _, p := range d.Args {
		job.Args = append(job.Args, jobspec.Pair{Flag: p.Flag, Value: p.Value})
	}
	return job
}

// LoadScenario reads and parses a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if strings.TrimSpace(scenario.Name) == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if scenario.Job.Name == "" || scenario.Job.Script == "" {
		return nil, fmt.Errorf("scenario %s: job name and script are required", path)
	}
	return &scenario, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by file
// name for stable test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenarios dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".yaml") || strings.HasSuffix(entry.Name(), ".yml") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
