package launcher

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraceContext_DeadlineShiftedByGrace(t *testing.T) {
	deadline := time.Now().Add(time.Hour)
	ctx, cancel := GraceContext(context.Background(), deadline, 2*time.Minute)
	defer cancel()

	got, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, deadline.Add(-2*time.Minute), got, time.Second)
}

func TestGraceContext_ZeroDeadlineMeansNoLimit(t *testing.T) {
	ctx, cancel := GraceContext(context.Background(), time.Time{}, 2*time.Minute)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.False(t, ok)
	assert.NoError(t, ctx.Err())
}

func TestGraceContext_CancelsAtCutoff(t *testing.T) {
	// Deadline 30ms out with a 20ms grace period: cancellation ~10ms in.
	deadline := time.Now().Add(30 * time.Millisecond)
	ctx, cancel := GraceContext(context.Background(), deadline, 20*time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("context not cancelled at grace cutoff")
	}
	assert.True(t, time.Now().Before(deadline), "cancellation must land before the deadline itself")
}

func TestNotifyGrace_CancelsOnSignal(t *testing.T) {
	ctx, stop := NotifyGrace(context.Background(), nil, syscall.SIGUSR1)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled on SIGUSR1")
	}
}

func TestNotifyGrace_StopReleases(t *testing.T) {
	ctx, stop := NotifyGrace(context.Background(), nil, syscall.SIGUSR1)
	stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("stop should cancel the derived context")
	}
}

func TestGraceContext_InheritsParentCancellation(t *testing.T) {
	parent, parentCancel := context.WithCancel(context.Background())
	ctx, cancel := GraceContext(parent, time.Now().Add(time.Hour), time.Minute)
	defer cancel()

	parentCancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("child context not cancelled with parent")
	}
}
