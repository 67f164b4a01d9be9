package actor

import (
	"errors"
	"fmt"
)

// ErrActorTerminated indicates that an operation failed because the target
// actor was terminated or in the process of shutting down.
var ErrActorTerminated = errors.New("actor terminated")

// ErrMailboxClosed indicates that a send was attempted against a mailbox
// that has already been closed.
var ErrMailboxClosed = errors.New("mailbox closed")

// ErrInteractionDropped is returned by a Future's Await when its result
// channel is closed without a value. An Interaction left undispatched when
// its actor shuts down is completed with ErrActorTerminated instead.
var ErrInteractionDropped = errors.New("interaction dropped before reply")

// ErrNotifierReused indicates that a LifecycleNotifier was invoked more
// than once.
var ErrNotifierReused = errors.New("lifecycle notifier already used")

// ErrSupervisorGone indicates that a child attempted to report ChildDone to
// a supervisor whose operator has already been finalized.
var ErrSupervisorGone = errors.New("supervisor no longer reachable")

// DispatchError wraps a failure to route or handle an envelope for a
// message of the named type.
type DispatchError struct {
	MessageType string
	Err         error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch error for %s: %v", e.MessageType, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// ErrNoHandler indicates that a message type was sent to an actor with no
// registered behavior for it.
var ErrNoHandler = errors.New("no handler registered for message type")
