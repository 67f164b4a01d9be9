package actor

import "context"

// dispatcher is a type-erased closure produced by HandleAction/
// HandleInteraction at behavior-registration time. It receives the actor,
// its context, and the concrete message (boxed as Message), and writes a
// result (if any) into reply when non-nil.
//
// This closure is the Go stand-in for the trait-object dispatch the
// original design relies on: since Go forbids overloading a method name by
// parameter type on a single receiver, a heterogeneous actor cannot expose
// "Receive(ctx, M1)" and "Receive(ctx, M2)" side by side. Instead each
// concrete message type is bound, once, to a closure over its own handler,
// and envelopes look that closure up by reflect.Type at send time.
type dispatcher[A any] func(ctx context.Context, actor A, actCtx *Context[A], msg Message, reply *erasedPromise) error

// erasedPromise boxes a Promise[R] of unknown R so it can travel inside a
// homogeneous envelope. complete is nil for Actions (fire-and-forget).
type erasedPromise struct {
	complete func(value any, err error)
}

// envelope is the homogeneous unit carried by both the normal and the
// high-priority mailbox.
type envelope[A any] struct {
	msg     Message
	dispatch dispatcher[A]
	reply   *erasedPromise
}

// run invokes the envelope's dispatcher against the live actor and
// context, reporting handler errors to the log rather than the caller
// (Actions) or completing the reply slot (Interactions, handled inside the
// dispatcher closure itself).
func (e envelope[A]) run(ctx context.Context, actor A, actCtx *Context[A]) {
	if e.dispatch == nil {
		err := &DispatchError{MessageType: typeTag(e.msg), Err: ErrNoHandler}
		if e.reply != nil {
			e.reply.complete(nil, err)
		} else {
			log.WarnS(ctx, "no handler registered for action", "err", err)
		}
		return
	}

	err := e.dispatch(ctx, actor, actCtx, e.msg, e.reply)
	if err != nil && e.reply == nil {
		log.WarnS(ctx, "action handler returned error",
			"message_type", typeTag(e.msg), "err", err)
	}
}

// fail completes the envelope's reply slot (if any) with err without
// running its dispatcher, used when draining a mailbox at shutdown.
func (e envelope[A]) fail(err error) {
	if e.reply != nil {
		e.reply.complete(nil, err)
	}
}
