package actor

import "sync"

// TerminatorStatus is the derived status of a Terminator.
type TerminatorStatus int

const (
	// Active: no stop has been requested.
	Active TerminatorStatus = iota
	// Stopping: a stop was requested and at least one child remains.
	Stopping
	// SafeToStop: a stop was requested and no children remain.
	SafeToStop
)

func (s TerminatorStatus) String() string {
	switch s {
	case Active:
		return "active"
	case Stopping:
		return "stopping"
	case SafeToStop:
		return "safe-to-stop"
	default:
		return "unknown"
	}
}

// childHandle is how a Terminator propagates a stop request to a tracked
// child, whether the child is a full actor (Address.Interrupt) or a lite
// task (firing its shutdown sender).
type childHandle struct {
	id          Id
	requestStop func()
}

// Terminator tracks an actor's live children and stop-requested flag, and
// derives when the actor is safe to stop. It is the core state machine
// behind the quiescence protocol: a parent cannot exit its runtime loop
// until every child it spawned has reported done.
type Terminator struct {
	mu            sync.Mutex
	children      map[Id]childHandle
	stopRequested bool
	reachedSafe   bool
}

func newTerminator() *Terminator {
	return &Terminator{children: make(map[Id]childHandle)}
}

// addChild registers a live child. Safe to call concurrently with
// requestStop/removeChild.
func (t *Terminator) addChild(h childHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.children[h.id] = h
}

// requestStop records the stop request. On the first call it returns the
// snapshot of currently-live children (so the caller can propagate the
// stop to each of them) and whether the actor is already safe to stop
// because it had no children; subsequent calls return (nil, false),
// making the request idempotent.
func (t *Terminator) requestStop() (live []childHandle, safeNow bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopRequested {
		return nil, false
	}
	t.stopRequested = true

	live = make([]childHandle, 0, len(t.children))
	for _, h := range t.children {
		live = append(live, h)
	}
	return live, t.checkSafeLocked()
}

// removeChild drops id from the live set, returning true exactly once: the
// call that observes stop-requested with zero children remaining, i.e.
// the transition into SafeToStop.
func (t *Terminator) removeChild(id Id) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.children, id)
	return t.checkSafeLocked()
}

// checkSafeLocked must be called with t.mu held. It returns true exactly
// once, on the transition into SafeToStop.
func (t *Terminator) checkSafeLocked() bool {
	if t.stopRequested && len(t.children) == 0 && !t.reachedSafe {
		t.reachedSafe = true
		return true
	}
	return false
}

// Status reports the actor's current derived status.
func (t *Terminator) Status() TerminatorStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.reachedSafe:
		return SafeToStop
	case t.stopRequested:
		return Stopping
	default:
		return Active
	}
}

// ChildCount reports how many children are currently tracked as live.
func (t *Terminator) ChildCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.children)
}
