package testutil

import (
	"context"
	"sync"

	"github.com/DLii-Research/snake-fungal-disease/internal/launcher"
)

// RecorderExecutor captures commands instead of spawning processes.
//
// Tests configure the result to return; every command passed to Run is
// recorded in order. Thread-safe via internal mutex.
type RecorderExecutor struct {
	mu       sync.Mutex
	commands []launcher.Command

	// Result is returned from every Run call.
	Result launcher.Result

	// Err, if set, is returned from every Run call.
	Err error
}

// Run records the command and returns the configured result.
func (e *RecorderExecutor) Run(_ context.Context, cmd launcher.Command) (launcher.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, cmd)
	return e.Result, e.Err
}

// Commands returns the recorded commands in execution order.
func (e *RecorderExecutor) Commands() []launcher.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]launcher.Command(nil), e.commands...)
}

// Calls returns how many times Run was invoked.
func (e *RecorderExecutor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.commands)
}
