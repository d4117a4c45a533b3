package launcher

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultGrace is the default scheduler grace period: launches are cancelled
// this long before the job deadline so the child can checkpoint.
const DefaultGrace = 120 * time.Second

// GraceContext derives a cancellation token from a job deadline.
//
// The returned context is cancelled grace before deadline. A zero deadline
// means no time limit is known (interactive runs outside the scheduler), in
// which case the context only inherits the parent's cancellation.
//
// This models the batch scheduler's interrupt-before-deadline notification
// without needing a real scheduler: whatever owns the long-running task
// watches ctx.Done() and reacts.
func GraceContext(parent context.Context, deadline time.Time, grace time.Duration) (context.Context, context.CancelFunc) {
	if deadline.IsZero() {
		return context.WithCancel(parent)
	}
	cutoff := deadline.Add(-grace)
	return context.WithDeadline(parent, cutoff)
}

// NotifyGrace additionally cancels the context when the scheduler delivers
// its early-interrupt signal (SIGUSR1) or the user interrupts the launcher.
//
// The launcher only delivers the cancellation; reacting to it (checkpointing,
// uploading artifacts) belongs to the child process.
func NotifyGrace(parent context.Context, logger *slog.Logger, signals ...os.Signal) (context.Context, context.CancelFunc) {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGUSR1, os.Interrupt, syscall.SIGTERM}
	}

	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if logger != nil {
				logger.Info("received signal, cancelling launch", "signal", sig.String())
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
