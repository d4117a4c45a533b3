package launcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Environment variable names consumed by the launcher.
const (
	// EnvReady marks that the bootstrap step has run. Any non-empty value
	// other than "0" and "false" counts as ready.
	EnvReady = "SFD_ENV_READY"

	// EnvInterpreter is the Python interpreter used for training scripts.
	EnvInterpreter = "SFD_PYTHON"

	// EnvScriptRoot is the directory holding the training scripts.
	EnvScriptRoot = "SFD_SCRIPT_ROOT"

	// EnvDataRoot is the dataset root directory (the ${data} expansion).
	EnvDataRoot = "SFD_DATA_ROOT"

	// EnvArtifact is the default pretrained-model artifact reference
	// (the ${artifact} expansion).
	EnvArtifact = "SFD_ARTIFACT"
)

// DefaultInterpreter is used when EnvInterpreter is unset.
const DefaultInterpreter = "python3"

// LookupFunc resolves an environment variable, reporting whether it was set.
// os.LookupEnv satisfies this signature.
type LookupFunc func(key string) (string, bool)

// Environment is the explicit launch configuration.
//
// It replaces the shell scripts' process-global readiness flag: callers build
// one from an injected lookup, pass it around, and test it without touching
// real process state.
type Environment struct {
	// Ready reports that the environment bootstrap step has completed.
	Ready bool

	// Interpreter is the path of the Python interpreter.
	Interpreter string

	// ScriptRoot is the directory training script paths are resolved against.
	ScriptRoot string

	// DataRoot is the dataset root directory.
	DataRoot string

	// Artifact is the default pretrained-artifact reference.
	Artifact string
}

// FromOS builds an Environment from the given lookup function.
//
// Pass os.LookupEnv for the real process environment; tests pass a map-backed
// lookup. Nothing is read lazily afterwards.
func FromOS(lookup LookupFunc) Environment {
	env := Environment{Interpreter: DefaultInterpreter}

	if v, ok := lookup(EnvReady); ok {
		env.Ready = v != "" && v != "0" && !strings.EqualFold(v, "false")
	}
	if v, ok := lookup(EnvInterpreter); ok && v != "" {
		env.Interpreter = v
	}
	if v, ok := lookup(EnvScriptRoot); ok {
		env.ScriptRoot = v
	}
	if v, ok := lookup(EnvDataRoot); ok {
		env.DataRoot = v
	}
	if v, ok := lookup(EnvArtifact); ok {
		env.Artifact = v
	}
	return env
}

// Check verifies the launch precondition.
// Returns a NOT_READY LaunchError when the bootstrap step has not run.
func (e Environment) Check() error {
	if !e.Ready {
		return NewNotReadyError()
	}
	return nil
}

// ScriptPath resolves a job's script path against the script root.
func (e Environment) ScriptPath(script string) string {
	if e.ScriptRoot == "" {
		return script
	}
	return filepath.Join(e.ScriptRoot, script)
}

// placeholderPattern matches ${name} expansions in fixed arg values.
var placeholderPattern = regexp.MustCompile(`\$\{([a-z]+)\}`)

// Expand substitutes ${data}, ${scripts}, and ${artifact} placeholders in a
// fixed arg value. Unknown placeholders are an error rather than passing
// through silently - a misspelled expansion must never reach the child as a
// literal dataset path.
func (e Environment) Expand(value string) (string, error) {
	var expandErr error
	expanded := placeholderPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		switch name {
		case "data":
			return e.DataRoot
		case "scripts":
			return e.ScriptRoot
		case "artifact":
			return e.Artifact
		default:
			if expandErr == nil {
				expandErr = &LaunchError{
					Code:    ErrCodeUnknownPlaceholder,
					Message: fmt.Sprintf("unknown placeholder %s in %q", match, value),
				}
			}
			return match
		}
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}
