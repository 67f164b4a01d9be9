package actor

import (
	"context"
	"sync"
	"sync/atomic"
)

// mailbox holds the two delivery paths every actor has: a bounded
// "normal" channel providing natural backpressure, and an unbounded
// high-priority queue that a sender can never be blocked on. An
// atomic.Bool closed flag plus an RWMutex held for the duration of a send
// keeps a concurrent close from ever racing a send onto a closed channel.
type mailbox[A any] struct {
	normalCh chan envelope[A]
	hp       *unboundedQueue[envelope[A]]

	closed    atomic.Bool
	closeMu   sync.RWMutex
	closeOnce sync.Once
}

// normalMailboxCapacity bounds the normal-priority channel. 32 matches the
// depth the component design calls out for backpressure under burst load.
const normalMailboxCapacity = 32

func newMailbox[A any]() *mailbox[A] {
	return &mailbox[A]{
		normalCh: make(chan envelope[A], normalMailboxCapacity),
		hp:       newUnboundedQueue[envelope[A]](),
	}
}

// sendNormal blocks until env is accepted, the mailbox is closed, or
// either context is cancelled.
func (m *mailbox[A]) sendNormal(ctx, actorCtx context.Context, env envelope[A]) error {
	m.closeMu.RLock()
	defer m.closeMu.RUnlock()

	if m.closed.Load() {
		return ErrMailboxClosed
	}

	select {
	case m.normalCh <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-actorCtx.Done():
		return ErrActorTerminated
	}
}

// sendHighPriority enqueues env onto the unbounded path. It only fails if
// the mailbox has already been closed.
func (m *mailbox[A]) sendHighPriority(env envelope[A]) bool {
	if m.closed.Load() {
		return false
	}
	return m.hp.push(env)
}

// close marks the mailbox closed and closes the underlying normal
// channel. Idempotent.
func (m *mailbox[A]) close() {
	m.closeOnce.Do(func() {
		m.closed.Store(true)

		m.closeMu.Lock()
		close(m.normalCh)
		m.closeMu.Unlock()

		m.hp.close()
	})
}

// drain returns every envelope left in both paths after close, normal
// envelopes first, then any remaining high-priority envelopes.
func (m *mailbox[A]) drain() []envelope[A] {
	var leftover []envelope[A]
	for env := range m.normalCh {
		leftover = append(leftover, env)
	}
	leftover = append(leftover, m.hp.drain()...)
	return leftover
}
