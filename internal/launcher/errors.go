package launcher

import (
	"errors"
	"fmt"
)

// LaunchError represents an error detected before or while spawning a job.
//
// Launch errors include:
//   - Not ready: the environment bootstrap step has not run
//   - Unknown placeholder: a fixed arg references an undefined expansion
//   - Spawn failed: the child process could not be started
//
// Downstream failures (bad dataset paths, model errors, interpreter crashes)
// are NOT launch errors: they belong to the child and surface only as its
// exit status, propagated unchanged.
type LaunchError struct {
	// Code identifies the error category.
	Code LaunchErrorCode

	// Message is a human-readable description.
	Message string

	// Job identifies the affected job, if known.
	Job string

	// Err is the underlying error, if any.
	Err error
}

// LaunchErrorCode categorizes launch errors.
type LaunchErrorCode string

const (
	// ErrCodeNotReady indicates the launch environment bootstrap has not run.
	ErrCodeNotReady LaunchErrorCode = "NOT_READY"

	// ErrCodeUnknownPlaceholder indicates a fixed arg references an undefined
	// expansion variable.
	ErrCodeUnknownPlaceholder LaunchErrorCode = "UNKNOWN_PLACEHOLDER"

	// ErrCodeBadArgument indicates an invalid flag/value pair.
	ErrCodeBadArgument LaunchErrorCode = "BAD_ARGUMENT"

	// ErrCodeSpawnFailed indicates the child process could not be started.
	ErrCodeSpawnFailed LaunchErrorCode = "SPAWN_FAILED"
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	if e.Job != "" {
		return fmt.Sprintf("%s: %s (job=%s)", e.Code, e.Message, e.Job)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsNotReady returns true if the error is an environment-not-ready error.
// Uses errors.As to handle wrapped errors.
func IsNotReady(err error) bool {
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Code == ErrCodeNotReady
	}
	return false
}

// NewNotReadyError creates a LaunchError instructing the user to bootstrap.
func NewNotReadyError() *LaunchError {
	return &LaunchError{
		Code:    ErrCodeNotReady,
		Message: "launch environment not ready: run \"source env/setup.sh\" before launching jobs",
	}
}
