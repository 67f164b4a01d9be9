package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminatorStatusTransitions(t *testing.T) {
	t.Parallel()

	term := newTerminator()
	require.Equal(t, Active, term.Status())

	childID := newId("child")
	term.addChild(childHandle{id: childID, requestStop: func() {}})
	require.Equal(t, 1, term.ChildCount())

	live, safeNow := term.requestStop()
	require.Len(t, live, 1)
	require.False(t, safeNow)
	require.Equal(t, Stopping, term.Status())

	becameSafe := term.removeChild(childID)
	require.True(t, becameSafe)
	require.Equal(t, SafeToStop, term.Status())
	require.Equal(t, 0, term.ChildCount())

	// Idempotent: a second stop request changes nothing further.
	live, safeNow = term.requestStop()
	require.Nil(t, live)
	require.False(t, safeNow)
}

func TestTerminatorSafeImmediatelyWithNoChildren(t *testing.T) {
	t.Parallel()

	term := newTerminator()
	_, safeNow := term.requestStop()
	require.True(t, safeNow)
	require.Equal(t, SafeToStop, term.Status())
}
