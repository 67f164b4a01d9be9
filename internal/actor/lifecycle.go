package actor

import "sync"

// Awake is injected into an actor's own high-priority mailbox by Spawn,
// guaranteeing it is the first message the runtime loop observes. Actors
// that want to run setup logic register a handler for it.
type Awake struct {
	BaseAction
}

// HighPriority marks Awake as travelling the unbounded path.
func (Awake) HighPriority() bool { return true }

// Interrupt is delivered to an actor when Address.Interrupt is called,
// alongside (not instead of) the structural stop signal that actually
// drives the Terminator. Handling it is optional; an actor that ignores it
// still stops once its Terminator reaches SafeToStop.
type Interrupt struct {
	BaseAction
}

// HighPriority marks Interrupt as travelling the unbounded path.
func (Interrupt) HighPriority() bool { return true }

// Done reports that the child identified by Child has exited. C is the
// concrete actor (or task marker) type of the child, letting a supervisor
// register type-specific handlers for different kinds of children.
type Done[C any] struct {
	BaseAction
	Child Id
}

// HighPriority marks Done as travelling the unbounded path, so a
// supervisor can never be starved of completion notice by a backlog of
// normal-priority traffic.
func (Done[C]) HighPriority() bool { return true }

// LifecycleNotifier is a one-shot capability that sends a specific
// lifecycle message to a specific actor via its high-priority path.
// Invoking it a second time reports ErrNotifierReused rather than
// delivering the message again.
type LifecycleNotifier struct {
	mu   sync.Mutex
	used bool
	send func() error
}

// newLifecycleNotifier builds a notifier that, once, calls send.
func newLifecycleNotifier(send func() error) *LifecycleNotifier {
	return &LifecycleNotifier{send: send}
}

// Notify fires the notifier. Safe for concurrent use; only the first
// caller's invocation actually sends.
func (n *LifecycleNotifier) Notify() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.used {
		return ErrNotifierReused
	}
	n.used = true
	return n.send()
}
