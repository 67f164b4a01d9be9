package actor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// counter is the simplest possible stateful actor: it accumulates Add
// actions and answers GetTotal interactions.
type counter struct {
	total int
}

type Add struct {
	BaseAction
	N int
}

type GetTotal struct {
	BaseInteraction[int]
}

func counterBehaviors() *Behaviors[*counter] {
	b := NewBehaviors[*counter]()
	HandleAction(b, func(_ context.Context, c *counter, _ *Context[*counter], msg Add) error {
		c.total += msg.N
		return nil
	})
	HandleInteraction(b, func(_ context.Context, c *counter, _ *Context[*counter], _ GetTotal) fn.Result[int] {
		return fn.Ok(c.total)
	})
	return b
}

func TestActionThenInteractionRoundTrip(t *testing.T) {
	t.Parallel()

	addr := Standalone(counterBehaviors(), &counter{})

	ctx := context.Background()
	require.NoError(t, addr.Act(ctx, Add{N: 3}))
	require.NoError(t, addr.Act(ctx, Add{N: 4}))

	total, err := Interact[*counter, int](ctx, addr, GetTotal{}).Await(ctx).Unpack()
	require.NoError(t, err)
	require.Equal(t, 7, total)

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))
}

func TestFIFOWithinNormalPriority(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var seen []int

	type Record struct {
		BaseAction
		N int
	}

	type recorder struct{}
	b := NewBehaviors[*recorder]()
	HandleAction(b, func(_ context.Context, _ *recorder, _ *Context[*recorder], msg Record) error {
		mu.Lock()
		seen = append(seen, msg.N)
		mu.Unlock()
		return nil
	})

	addr := Standalone(b, &recorder{})
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		require.NoError(t, addr.Act(ctx, Record{N: i}))
	}

	// Interrupt's stop signal is selected ahead of queued normal-priority
	// messages, which are dropped at shutdown, so wait for every Record to
	// be handled before stopping the actor.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 20
	}, time.Second, time.Millisecond)

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 20)
	for i, v := range seen {
		require.Equal(t, i, v)
	}
}

type slowAction struct {
	BaseAction
}

type urgentAction struct {
	BaseAction
}

// HighPriority makes urgentAction travel the unbounded path, ahead of any
// already-queued normal-priority traffic.
func (urgentAction) HighPriority() bool { return true }

func TestHighPriorityBeatsNormalPriority(t *testing.T) {
	t.Parallel()

	var order []string
	var mu sync.Mutex
	release := make(chan struct{})

	type gate struct{}
	b := NewBehaviors[*gate]()
	HandleAction(b, func(_ context.Context, _ *gate, _ *Context[*gate], _ slowAction) error {
		<-release
		mu.Lock()
		order = append(order, "slow")
		mu.Unlock()
		return nil
	})
	HandleAction(b, func(_ context.Context, _ *gate, _ *Context[*gate], _ urgentAction) error {
		mu.Lock()
		order = append(order, "urgent")
		mu.Unlock()
		return nil
	})

	addr := Standalone(b, &gate{})
	ctx := context.Background()

	// The first slowAction blocks the loop on release; a second
	// slowAction then queues behind it on the normal path, and the
	// urgentAction queued after both must still win the race for the
	// third dispatch via the high-priority path.
	require.NoError(t, addr.Act(ctx, slowAction{}))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, addr.Act(ctx, slowAction{}))
	require.NoError(t, addr.Act(ctx, urgentAction{}))

	close(release)

	// Wait for all three dispatches before Interrupt, whose stop signal
	// would otherwise be selected ahead of the queued messages.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	}, time.Second, time.Millisecond)

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"slow", "urgent", "slow"}, order)
}

func TestAwakeIsDeliveredBeforeAnyOtherMessage(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var order []string

	type Ping struct {
		BaseAction
	}

	type greeter struct{}
	b := NewBehaviors[*greeter]()
	HandleAction(b, func(_ context.Context, _ *greeter, _ *Context[*greeter], _ Awake) error {
		mu.Lock()
		order = append(order, "awake")
		mu.Unlock()
		return nil
	})
	HandleAction(b, func(_ context.Context, _ *greeter, _ *Context[*greeter], _ Ping) error {
		mu.Lock()
		order = append(order, "ping")
		mu.Unlock()
		return nil
	})

	addr := Standalone(b, &greeter{})
	ctx := context.Background()

	// Sent immediately after construction, racing the runtime's first
	// loop iteration; Awake must still win since it was queued ahead of
	// this on the high-priority path before the runtime goroutine ever
	// started.
	require.NoError(t, addr.Act(ctx, Ping{}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, time.Second, time.Millisecond)

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"awake", "ping"}, order)
}

func TestAddressValueCopySharesTheSameActor(t *testing.T) {
	t.Parallel()

	addr := Standalone(counterBehaviors(), &counter{})
	handle := *addr // an independent struct value, same underlying mailbox

	ctx := context.Background()
	require.NoError(t, addr.Act(ctx, Add{N: 2}))
	require.NoError(t, handle.Act(ctx, Add{N: 3}))

	total, err := Interact[*counter, int](ctx, addr, GetTotal{}).Await(ctx).Unpack()
	require.NoError(t, err)
	require.Equal(t, 5, total)

	// Stopping and joining through the copy reaches the same actor the
	// original addr points at.
	handle.Interrupt()
	require.NoError(t, handle.Join(ctx))
}

func TestMultiChildDoneFanIn(t *testing.T) {
	t.Parallel()

	type child struct{}
	childB := NewBehaviors[*child]()

	type Spawn struct {
		BaseAction
		N int
	}

	type parent struct {
		mu    sync.Mutex
		dones []Id
	}

	var childMu sync.Mutex
	var children []*Address[*child]

	parentB := NewBehaviors[*parent]()
	HandleAction(parentB, func(_ context.Context, _ *parent, ctx *Context[*parent], msg Spawn) error {
		for i := 0; i < msg.N; i++ {
			c := BindActor(ctx, &child{}, childB)
			childMu.Lock()
			children = append(children, c)
			childMu.Unlock()
		}
		return nil
	})
	HandleAction(parentB, func(_ context.Context, p *parent, _ *Context[*parent], msg Done[*child]) error {
		p.mu.Lock()
		p.dones = append(p.dones, msg.Child)
		p.mu.Unlock()
		return nil
	})

	p := &parent{}
	addr := Standalone(parentB, p)
	ctx := context.Background()

	require.NoError(t, addr.Act(ctx, Spawn{N: 3}))

	require.Eventually(t, func() bool {
		childMu.Lock()
		defer childMu.Unlock()
		return len(children) == 3
	}, time.Second, time.Millisecond)

	childMu.Lock()
	kids := append([]*Address[*child](nil), children...)
	childMu.Unlock()

	for _, c := range kids {
		c.Interrupt()
		require.NoError(t, c.Join(ctx))
	}

	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.dones) == 3
	}, time.Second, 5*time.Millisecond)

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))
}

func TestQuiescenceWaitsForChildren(t *testing.T) {
	t.Parallel()

	type child struct{}
	childB := NewBehaviors[*child]()

	started := make(chan struct{})
	type parent struct {
		childAddr *Address[*child]
		term      *Terminator
	}

	type Spawn struct {
		BaseAction
	}

	parentB := NewBehaviors[*parent]()
	HandleAction(parentB, func(_ context.Context, p *parent, ctx *Context[*parent], _ Spawn) error {
		p.childAddr = BindActor(ctx, &child{}, childB)
		p.term = ctx.Terminator()
		close(started)
		return nil
	})

	p := &parent{}
	addr := Standalone(parentB, p)
	ctx := context.Background()

	require.NoError(t, addr.Act(ctx, Spawn{}))
	<-started

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))

	// The parent only exits after the child's ChildDone has cleared it
	// from the terminator.
	require.Equal(t, 0, p.term.ChildCount())
	require.Equal(t, SafeToStop, p.term.Status())
	require.NoError(t, p.childAddr.Join(ctx))
}

func TestIdempotentInterrupt(t *testing.T) {
	t.Parallel()

	type noop struct{}
	b := NewBehaviors[*noop]()
	addr := Standalone(b, &noop{})

	addr.Interrupt()
	addr.Interrupt()
	addr.Interrupt()

	require.NoError(t, addr.Join(context.Background()))
}

func TestInteractionDroppedAfterTerminated(t *testing.T) {
	t.Parallel()

	type slug struct{}
	type Ping struct {
		BaseInteraction[string]
	}
	b := NewBehaviors[*slug]()
	HandleInteraction(b, func(_ context.Context, _ *slug, _ *Context[*slug], _ Ping) fn.Result[string] {
		return fn.Ok("pong")
	})

	addr := Standalone(b, &slug{})
	ctx := context.Background()

	addr.Interrupt()
	require.NoError(t, addr.Join(ctx))

	_, err := Interact[*slug, string](ctx, addr, Ping{}).Await(ctx).Unpack()
	require.Error(t, err)
}

func TestLifecycleNotifierReuse(t *testing.T) {
	t.Parallel()

	var calls int32
	notifier := newLifecycleNotifier(func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	require.NoError(t, notifier.Notify())
	err := notifier.Notify()
	require.ErrorIs(t, err, ErrNotifierReused)
	require.Equal(t, int32(1), calls)
}

func TestHeartBeatTicksRecipient(t *testing.T) {
	t.Parallel()

	type sink struct{}
	b := NewBehaviors[*sink]()

	var ticks int32
	HandleAction(b, func(_ context.Context, _ *sink, _ *Context[*sink], _ Tick) error {
		atomic.AddInt32(&ticks, 1)
		return nil
	})

	addr := Standalone(b, &sink{})
	recipient := AsActionRecipient[*sink, Tick](addr)

	hb := NewHeartBeat(5*time.Millisecond, recipient)
	handle := SpawnTask(hb)

	time.Sleep(40 * time.Millisecond)
	handle.Shutdown()
	require.NoError(t, handle.Join(context.Background()))

	require.Greater(t, atomic.LoadInt32(&ticks), int32(0))

	addr.Interrupt()
	require.NoError(t, addr.Join(context.Background()))
}

func TestSystemShutdownWaitsForTrackedActors(t *testing.T) {
	t.Parallel()

	type worker struct{}
	b := NewBehaviors[*worker]()

	sys := NewSystem()
	addr := Standalone(b, &worker{})
	TrackActor(sys, addr)

	done := make(chan struct{})
	go func() {
		addr.Interrupt()
		close(done)
	}()

	<-done
	require.NoError(t, sys.Shutdown())

	select {
	case <-addr.done:
	default:
		t.Fatal("Shutdown returned before the tracked actor exited")
	}
}
