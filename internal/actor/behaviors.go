package actor

import (
	"context"
	"reflect"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Behaviors is a per-actor-type dispatch table mapping a concrete message
// type to the closure that handles it. It is the registry an Actor's
// constructor populates with HandleAction/HandleInteraction before the
// actor is spawned.
//
// Grounded on the "tagged closure" design note: Go cannot express the
// heterogeneous-trait-object dispatch the original runtime relies on
// (a single receiver cannot overload a method by parameter type), so each
// message type's handler is erased into a dispatcher and looked up by
// reflect.Type when an envelope for that type is constructed.
type Behaviors[A any] struct {
	handlers map[reflect.Type]dispatcher[A]
}

// NewBehaviors creates an empty dispatch table for actor type A.
func NewBehaviors[A any]() *Behaviors[A] {
	return &Behaviors[A]{handlers: make(map[reflect.Type]dispatcher[A])}
}

// HandleAction registers handle as the behavior for one-way messages of
// concrete type M. handle's error, if any, is logged by the runtime and
// never surfaced to the sender.
func HandleAction[A any, M Action](b *Behaviors[A], handle func(ctx context.Context, actor A, actCtx *Context[A], msg M) error) {
	t := reflect.TypeOf(*new(M))
	b.handlers[t] = func(ctx context.Context, actor A, actCtx *Context[A], msg Message, reply *erasedPromise) error {
		concrete, ok := msg.(M)
		if !ok {
			return &DispatchError{MessageType: t.Name(), Err: ErrNoHandler}
		}
		return handle(ctx, actor, actCtx, concrete)
	}
}

// HandleInteraction registers handle as the behavior for request/response
// messages of concrete type M, whose result is of type R. The result is
// delivered to the caller's Future via the envelope's reply slot.
func HandleInteraction[A any, M Message, R any](b *Behaviors[A], handle func(ctx context.Context, actor A, actCtx *Context[A], msg M) fn.Result[R]) {
	t := reflect.TypeOf(*new(M))
	b.handlers[t] = func(ctx context.Context, actor A, actCtx *Context[A], msg Message, reply *erasedPromise) error {
		concrete, ok := msg.(M)
		if !ok {
			err := &DispatchError{MessageType: t.Name(), Err: ErrNoHandler}
			if reply != nil {
				reply.complete(nil, err)
			}
			return err
		}

		val, err := handle(ctx, actor, actCtx, concrete).Unpack()
		if reply != nil {
			reply.complete(val, err)
		}
		return err
	}
}

// lookup returns the dispatcher registered for msg's concrete type, or nil
// if none was registered.
func (b *Behaviors[A]) lookup(msg Message) dispatcher[A] {
	return b.handlers[reflect.TypeOf(msg)]
}

// newErasedPromise wraps a concrete Promise[R] so its completion can be
// driven from an envelope whose reply slot only knows about `any`.
func newErasedPromise[R any](p Promise[R]) *erasedPromise {
	return &erasedPromise{
		complete: func(value any, err error) {
			if err != nil {
				p.Complete(fn.Err[R](err))
				return
			}
			v, _ := value.(R)
			p.Complete(fn.Ok(v))
		},
	}
}
