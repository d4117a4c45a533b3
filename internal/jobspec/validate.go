package jobspec

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation error codes (E200-E219)
const (
	ErrJobNameEmpty     = "E200" // name is required
	ErrJobNameInvalid   = "E201" // name has invalid characters
	ErrDuplicateJobName = "E202" // duplicate job name in catalog
	ErrScriptEmpty      = "E203" // script is required
	ErrScriptAbsolute   = "E204" // script must be relative to the script root
	ErrFlagInvalid      = "E205" // flag must be non-empty and --prefixed
	ErrDuplicateFlag    = "E206" // flag appears twice in fixed args
	ErrValueEmpty       = "E207" // fixed arg value must be non-empty
	ErrResourceInvalid  = "E208" // negative resource request
)

// jobNamePattern restricts names to catalog-safe identifiers.
var jobNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidationError represents a job schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a job against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(job *Job) []ValidationError {
	var errs []ValidationError

	// E200/E201: name required, kebab-case
	if strings.TrimSpace(job.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrJobNameEmpty,
		})
	} else if !jobNamePattern.MatchString(job.Name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name %q must be lowercase letters, digits, and hyphens", job.Name),
			Code:    ErrJobNameInvalid,
		})
	}

	// E203/E204: script required, relative
	if strings.TrimSpace(job.Script) == "" {
		errs = append(errs, ValidationError{
			Field:   "script",
			Message: "script is required and must be non-empty",
			Code:    ErrScriptEmpty,
		})
	} else if strings.HasPrefix(job.Script, "/") {
		errs = append(errs, ValidationError{
			Field:   "script",
			Message: fmt.Sprintf("script %q must be relative to the script root", job.Script),
			Code:    ErrScriptAbsolute,
		})
	}

	// E205/E206/E207: fixed args are --flag value pairs, flags unique
	seen := make(map[string]bool, len(job.Args))
	for i, pair := range job.Args {
		field := fmt.Sprintf("args[%d]", i)
		if !strings.HasPrefix(pair.Flag, "--") || len(pair.Flag) <= 2 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("flag %q must start with -- and name an option", pair.Flag),
				Code:    ErrFlagInvalid,
			})
		}
		if seen[pair.Flag] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("flag %s appears more than once", pair.Flag),
				Code:    ErrDuplicateFlag,
			})
		}
		seen[pair.Flag] = true
		if pair.Value == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("value for flag %s must be non-empty", pair.Flag),
				Code:    ErrValueEmpty,
			})
		}
	}

	// E208: resource requests must be non-negative
	res := job.Resources
	for _, check := range []struct {
		field string
		value int
	}{
		{"resources.gpus", res.GPUs},
		{"resources.memory_gb", res.MemoryGB},
		{"resources.cpus", res.CPUs},
	} {
		if check.value < 0 {
			errs = append(errs, ValidationError{
				Field:   check.field,
				Message: fmt.Sprintf("must be non-negative, got %d", check.value),
				Code:    ErrResourceInvalid,
			})
		}
	}

	return errs
}
