package actor

import (
	"context"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Address is a cloneable handle to a spawned actor of type A. Copying an
// Address is cheap and safe; every copy shares the same mailbox and
// controller. Dropping every outstanding Address does not stop the actor:
// only its Terminator reaching SafeToStop does that, which is why the
// runtime keeps its own controller clone for self-triggered stop.
type Address[A any] struct {
	id        Id
	mbox      *mailbox[A]
	ctrl      Controller
	behaviors *Behaviors[A]
	done      <-chan struct{}
}

// Id returns the actor's identifier.
func (a *Address[A]) Id() Id {
	return a.id
}

// Act enqueues a one-way message, blocking for normal-priority messages
// until space is available (or ctx is cancelled), and never blocking for
// high-priority messages.
func (a *Address[A]) Act(ctx context.Context, msg Action) error {
	env := envelope[A]{msg: msg, dispatch: a.behaviors.lookup(msg)}

	if isHighPriority(msg) {
		if !a.mbox.sendHighPriority(env) {
			return ErrActorTerminated
		}
		return nil
	}

	return a.mbox.sendNormal(ctx, ctx, env)
}

// Interact enqueues a request/response message and returns a Future for
// its result.
func Interact[A any, R any](ctx context.Context, a *Address[A], msg Interaction[R]) Future[R] {
	promise := newPromise[R]()
	env := envelope[A]{
		msg:      msg,
		dispatch: a.behaviors.lookup(msg),
		reply:    newErasedPromise(promise),
	}

	var err error
	if isHighPriority(msg) {
		if !a.mbox.sendHighPriority(env) {
			err = ErrActorTerminated
		}
	} else {
		err = a.mbox.sendNormal(ctx, ctx, env)
	}

	if err != nil {
		promise.Complete(fn.Err[R](err))
	}
	return promise.Future()
}

// Interrupt asks the actor to stop: it delivers the Interrupt lifecycle
// message via the high-priority path for optional handling, and triggers
// the actor's own termination by signalling its controller directly. This
// is the single entry point that actually drives the Terminator, whether
// invoked by a caller or, cascading, by a parent stopping its children.
func (a *Address[A]) Interrupt() {
	a.injectHighPriority(Interrupt{})
	a.ctrl.SignalStop()
}

// Join blocks until the actor's runtime loop has exited.
func (a *Address[A]) Join(ctx context.Context) error {
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// injectHighPriority delivers a fire-and-forget lifecycle message over the
// unbounded path, looking up a dispatcher (if the actor registered one)
// but never failing if none exists, since lifecycle messages are
// optionally observed.
func (a *Address[A]) injectHighPriority(msg Message) bool {
	env := envelope[A]{msg: msg, dispatch: a.behaviors.lookup(msg)}
	return a.mbox.sendHighPriority(env)
}
