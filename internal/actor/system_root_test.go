package actor

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitOrInterruptReturnsOnceRootQuiesces(t *testing.T) {
	t.Parallel()

	type noop struct{}
	addr := Standalone(NewBehaviors[*noop](), &noop{})

	returned := make(chan struct{})
	go func() {
		WaitOrInterrupt(context.Background(), addr.Interrupt, addr.Join)
		close(returned)
	}()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitOrInterrupt did not return once the root actor quiesced")
	}

	require.NoError(t, addr.Join(context.Background()))
}

func TestSystemShutdownInterruptsTrackedMembersItself(t *testing.T) {
	t.Parallel()

	type worker struct{}
	addr := Standalone(NewBehaviors[*worker](), &worker{})

	sys := NewSystem()
	TrackActor(sys, addr)

	// Shutdown alone, with no caller ever invoking Interrupt, must still
	// drive the tracked actor to completion.
	require.NoError(t, sys.Shutdown())
	require.NoError(t, addr.Join(context.Background()))
}
