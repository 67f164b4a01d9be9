package actor

import (
	"context"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Future represents the result of an asynchronous computation. It allows
// consumers to wait for the result (Await), apply transformations upon
// completion (ThenApply), or register a callback to be executed when the
// result is available (OnComplete).
type Future[T any] interface {
	// Await blocks until the result is available or the context is
	// cancelled, then returns it.
	Await(ctx context.Context) fn.Result[T]

	// ThenApply registers a function to transform the result of a future.
	// The original future is not modified; a new future is returned.
	ThenApply(ctx context.Context, apply func(T) T) Future[T]

	// OnComplete registers a function to be called when the result of the
	// future is ready.
	OnComplete(ctx context.Context, cb func(fn.Result[T]))
}

// Promise is the write side of a Future. The producer of an asynchronous
// result uses a Promise to set the outcome; consumers use the associated
// Future to retrieve it.
type Promise[T any] interface {
	// Future returns the Future associated with this Promise.
	Future() Future[T]

	// Complete attempts to set the result of the future. It returns true
	// if this call was the first to complete it.
	Complete(result fn.Result[T]) bool
}

// chanFuture is a Future backed by a buffered, single-write channel. It is
// the concrete type handed back from Interact.
type chanFuture[T any] struct {
	ch   chan fn.Result[T]
	once sync.Once

	mu     sync.Mutex
	result fn.Result[T]
	done   bool
}

// chanPromise is the write side of a chanFuture.
type chanPromise[T any] struct {
	f *chanFuture[T]
}

// newPromise creates a linked Promise/Future pair backed by a single
// buffered channel.
func newPromise[T any]() Promise[T] {
	return &chanPromise[T]{
		f: &chanFuture[T]{ch: make(chan fn.Result[T], 1)},
	}
}

func (p *chanPromise[T]) Future() Future[T] {
	return p.f
}

func (p *chanPromise[T]) Complete(result fn.Result[T]) bool {
	f := p.f
	completed := false
	f.mu.Lock()
	if !f.done {
		f.done = true
		completed = true
	}
	f.mu.Unlock()

	if completed {
		f.ch <- result
	}
	return completed
}

func (f *chanFuture[T]) Await(ctx context.Context) fn.Result[T] {
	select {
	case res, ok := <-f.ch:
		if ok {
			f.resend(res)
			return res
		}
		return fn.Err[T](ErrInteractionDropped)
	case <-ctx.Done():
		return fn.Err[T](ctx.Err())
	}
}

// resend puts the result back on the channel so a future Await/OnComplete
// call (or ThenApply) observes the same value; the channel is buffered for
// exactly this purpose, turning it into a single-slot broadcast cell.
func (f *chanFuture[T]) resend(res fn.Result[T]) {
	select {
	case f.ch <- res:
	default:
	}
}

func (f *chanFuture[T]) ThenApply(ctx context.Context, apply func(T) T) Future[T] {
	out := &chanFuture[T]{ch: make(chan fn.Result[T], 1)}
	go func() {
		val, err := f.Await(ctx).Unpack()
		if err != nil {
			out.ch <- fn.Err[T](err)
			return
		}
		out.ch <- fn.Ok(apply(val))
	}()
	return out
}

func (f *chanFuture[T]) OnComplete(ctx context.Context, cb func(fn.Result[T])) {
	go func() {
		cb(f.Await(ctx))
	}()
}
