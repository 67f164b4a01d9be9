package actor

import "context"

// ActionRecipient is a type-erased projection of an Address[A] exposing
// only the capability to deliver a one-way message of type M. It lets a
// sender target "any actor that can handle M" without naming the actor
// type A, since the mailbox model is already erased past the message type.
type ActionRecipient[M Action] interface {
	Act(ctx context.Context, msg M) error
}

// InteractionRecipient is the request/response counterpart of
// ActionRecipient.
type InteractionRecipient[M Interaction[R], R any] interface {
	Interact(ctx context.Context, msg M) Future[R]
}

// actionRecipient adapts an Address[A] to ActionRecipient[M].
type actionRecipient[A any, M Action] struct {
	addr *Address[A]
}

func (r actionRecipient[A, M]) Act(ctx context.Context, msg M) error {
	return r.addr.Act(ctx, msg)
}

// AsActionRecipient projects addr down to the capability to receive
// messages of concrete type M.
func AsActionRecipient[A any, M Action](addr *Address[A]) ActionRecipient[M] {
	return actionRecipient[A, M]{addr: addr}
}

// interactionRecipient adapts an Address[A] to InteractionRecipient[M, R].
type interactionRecipient[A any, M Interaction[R], R any] struct {
	addr *Address[A]
}

func (r interactionRecipient[A, M, R]) Interact(ctx context.Context, msg M) Future[R] {
	return Interact[A, R](ctx, r.addr, msg)
}

// AsInteractionRecipient projects addr down to the capability to receive
// interactions of concrete type M with response R.
func AsInteractionRecipient[A any, M Interaction[R], R any](addr *Address[A]) InteractionRecipient[M, R] {
	return interactionRecipient[A, M, R]{addr: addr}
}
