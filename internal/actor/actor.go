package actor

import (
	"context"
	"time"
)

// Stoppable is an optional interface an actor value can implement to run
// cleanup after its runtime loop exits but before it reports Done to its
// supervisor.
type Stoppable interface {
	OnStop(ctx context.Context) error
}

// stopCleanupTimeout bounds how long OnStop is given to run during
// shutdown, so a slow or hung cleanup routine cannot stall the quiescence
// protocol of a supervisor waiting on this actor's Done.
const stopCleanupTimeout = 5 * time.Second

// supervisorLink is the record a spawned actor keeps of its supervisor, if
// any, used once at loop exit to report completion.
type supervisorLink struct {
	controller Controller
	notifyDone func(childID Id)
}

// runtime drives a single actor's goroutine: the cascading priority
// select loop, dispatch, and the shutdown sequence.
type runtime[A any] struct {
	id           Id
	actorVal     A
	behaviors    *Behaviors[A]
	mbox         *mailbox[A]
	operator     Operator
	terminator   *Terminator
	actCtx       *Context[A]
	supervisor   *supervisorLink
	doneNotifier *LifecycleNotifier
	doneCh       chan struct{}
}

// spawn is the shared construction path for both Standalone actors and
// children bound via Context.BindActor; the only difference is whether
// sup is nil.
func spawn[A any](behaviors *Behaviors[A], actorVal A, sup *supervisorLink) *Address[A] {
	id := newId(actorVal)
	ctrl, op := newControllerOperatorPair()
	mbox := newMailbox[A]()
	term := newTerminator()
	doneCh := make(chan struct{})

	addr := &Address[A]{
		id:        id,
		mbox:      mbox,
		ctrl:      ctrl,
		behaviors: behaviors,
		done:      doneCh,
	}

	var doneNotifier *LifecycleNotifier
	if sup != nil {
		doneNotifier = newLifecycleNotifier(func() error {
			if !sup.controller.SignalChildDone(id) {
				return ErrSupervisorGone
			}
			sup.notifyDone(id)
			return nil
		})
	}

	rt := &runtime[A]{
		id:           id,
		actorVal:     actorVal,
		behaviors:    behaviors,
		mbox:         mbox,
		operator:     op,
		terminator:   term,
		actCtx:       &Context[A]{self: addr, terminator: term},
		supervisor:   sup,
		doneNotifier: doneNotifier,
		doneCh:       doneCh,
	}

	// Awake travels through the mailbox, not as a direct call, so it
	// interleaves correctly with any other high-priority traffic a
	// supervisor may already have queued before the child's first poll.
	// The notifier guarantees this delivery attempt happens exactly once
	// per actor, matching the one-shot contract every lifecycle hand-off
	// in this package relies on.
	awake := newLifecycleNotifier(func() error {
		if !addr.injectHighPriority(Awake{}) {
			return ErrActorTerminated
		}
		return nil
	})
	if err := awake.Notify(); err != nil {
		log.WarnS(context.Background(), "failed to deliver awake notification",
			"actor_id", id, "err", err)
	}

	go rt.run()

	return addr
}

// Standalone spawns an actor with no supervisor. Its completion is
// reported nowhere; callers that care should Join its Address directly,
// or register it with a System via TrackActor.
func Standalone[A any](behaviors *Behaviors[A], actorVal A) *Address[A] {
	return spawn(behaviors, actorVal, nil)
}

func (rt *runtime[A]) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.DebugS(ctx, "actor starting", "actor_id", rt.id)

	var pending *envelope[A]
	for {
		if ev, ok := rt.operator.tryNext(); ok {
			if rt.handleStructural(ctx, ev) {
				break
			}
			continue
		}

		if env, ok := rt.mbox.hp.tryPop(); ok {
			env.run(ctx, rt.actorVal, rt.actCtx)
			continue
		}

		// A normal envelope taken off the channel while structural or
		// high-priority work was also ready is held until both are empty.
		if pending != nil {
			env := pending
			pending = nil
			env.run(ctx, rt.actorVal, rt.actCtx)
			continue
		}

		select {
		case <-rt.operator.waitChan():
		case <-rt.mbox.hp.waitChan():
		case env, ok := <-rt.mbox.normalCh:
			if ok {
				e := env
				pending = &e
			}
		}

		if ev, ok := rt.operator.tryNext(); ok {
			if rt.handleStructural(ctx, ev) {
				break
			}
			continue
		}
		if env, ok := rt.mbox.hp.tryPop(); ok {
			env.run(ctx, rt.actorVal, rt.actCtx)
			continue
		}
		if pending != nil {
			env := pending
			pending = nil
			env.run(ctx, rt.actorVal, rt.actCtx)
			continue
		}
		// Spurious wake: the event that woke us was already drained by a
		// racing tryNext/tryPop above. Loop and wait again.
	}

	// High-priority envelopes already queued when the loop exits (Awake,
	// Interrupt, Done) are still dispatched, so an actor stopped before its
	// first poll observes Awake and Interrupt.
	for env, ok := rt.mbox.hp.tryPop(); ok; env, ok = rt.mbox.hp.tryPop() {
		env.run(ctx, rt.actorVal, rt.actCtx)
	}
	if pending != nil {
		pending.fail(ErrActorTerminated)
	}

	rt.shutdown(ctx)
}

// handleStructural applies a structural event to the terminator and
// propagates a stop request to live children. It returns true when the
// actor has become safe to stop and the runtime loop should exit.
func (rt *runtime[A]) handleStructural(ctx context.Context, ev structuralEvent) bool {
	switch e := ev.(type) {
	case stopSignal:
		live, safeNow := rt.terminator.requestStop()
		for _, child := range live {
			child.requestStop()
		}
		return safeNow

	case childDone:
		return rt.terminator.removeChild(e.id)

	default:
		log.WarnS(ctx, "unrecognized structural event", "actor_id", rt.id)
		return false
	}
}

// shutdown drains any remaining envelopes, runs optional Stoppable
// cleanup, and reports completion to a supervisor if one exists.
func (rt *runtime[A]) shutdown(ctx context.Context) {
	rt.mbox.close()

	for _, env := range rt.mbox.drain() {
		if env.reply != nil {
			env.fail(ErrActorTerminated)
		} else {
			log.DebugS(ctx, "dropping undelivered action at shutdown",
				"actor_id", rt.id, "message_type", typeTag(env.msg))
		}
	}

	if stoppable, ok := any(rt.actorVal).(Stoppable); ok {
		cleanupCtx, cancel := context.WithTimeout(
			context.Background(), stopCleanupTimeout,
		)
		if err := stoppable.OnStop(cleanupCtx); err != nil {
			log.WarnS(ctx, "actor cleanup error during shutdown",
				"actor_id", rt.id, "err", err)
		}
		cancel()
	}

	if rt.doneNotifier != nil {
		if err := rt.doneNotifier.Notify(); err != nil {
			log.WarnS(ctx, "could not report completion to supervisor, child exiting anyway",
				"actor_id", rt.id, "err", err)
		}
	}

	rt.operator.close()

	log.DebugS(ctx, "actor terminated", "actor_id", rt.id)
	close(rt.doneCh)
}
