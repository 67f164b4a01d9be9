package actor

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// System is the virtual parent for standalone actors: it owns
// no mailbox of its own, but tracks the actors and lite tasks spawned
// under it so a host process can wait for a clean, deterministic shutdown
// instead of exiting out from under in-flight work.
type System struct {
	mu         sync.Mutex
	group      *errgroup.Group
	ctx        context.Context
	cancel     context.CancelFunc
	interrupts []func()
}

// NewSystem creates an empty System.
func NewSystem() *System {
	ctx, cancel := context.WithCancel(context.Background())
	group, _ := errgroup.WithContext(ctx)
	return &System{group: group, ctx: ctx, cancel: cancel}
}

// Context returns the System's lifetime context, cancelled by Shutdown.
func (s *System) Context() context.Context {
	return s.ctx
}

// TrackActor registers addr with the System: Shutdown will Interrupt it
// and wait for it to Join, surfacing the first non-nil error any tracked
// member returns. Join is awaited against its own unbounded background
// context, never raced against the System's lifetime context, so a
// cancellation cannot be mistaken for the actor having quiesced.
func TrackActor[A any](sys *System, addr *Address[A]) {
	sys.mu.Lock()
	sys.interrupts = append(sys.interrupts, addr.Interrupt)
	sys.mu.Unlock()

	sys.group.Go(func() error {
		return addr.Join(context.Background())
	})
}

// TrackTask registers a lite-task handle with the System the same way
// TrackActor registers an actor's address.
func TrackTask(sys *System, handle *TaskHandle) {
	sys.mu.Lock()
	sys.interrupts = append(sys.interrupts, handle.Shutdown)
	sys.mu.Unlock()

	sys.group.Go(func() error {
		return handle.Join(context.Background())
	})
}

// Shutdown requests every tracked actor and task stop, cancels the
// System's lifetime context so any member cooperatively watching it also
// unblocks, and then blocks until every tracked member has reported Join.
// It returns the first non-nil error observed, using errgroup's fan-in to
// collect results deterministically. Calling Interrupt/Shutdown on a
// member already stopping is safe: both are idempotent.
func (s *System) Shutdown() error {
	s.mu.Lock()
	interrupts := s.interrupts
	s.mu.Unlock()

	for _, interrupt := range interrupts {
		interrupt()
	}
	s.cancel()

	return s.group.Wait()
}

// WaitOrInterrupt blocks until either ctx is done or a SIGINT/SIGTERM is
// received. On the first signal it calls interruptRoot (typically
// Address.Interrupt on a root actor) and then races the root's own
// quiescence against a second signal: join returning means the root
// actually drained and WaitOrInterrupt can return so the caller proceeds
// to a normal Shutdown; a second signal instead exits the process
// immediately, so a hung shutdown can never make the binary unkillable.
func WaitOrInterrupt(ctx context.Context, interruptRoot func(), join func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		log.InfoS(ctx, "received interrupt signal, stopping root actor")
		interruptRoot()
	case <-ctx.Done():
		return
	}

	joined := make(chan struct{})
	go func() {
		_ = join(context.Background())
		close(joined)
	}()

	select {
	case <-sigCh:
		log.WarnS(ctx, "received second interrupt signal, exiting immediately")
		os.Exit(1)
	case <-joined:
		log.InfoS(ctx, "root actor quiesced")
	case <-ctx.Done():
	}
}
