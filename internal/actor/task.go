package actor

import (
	"context"
	"sync"
	"time"
)

// ShutdownReceiver is the single-shot signal a LiteTask watches to know
// when to stop. Unlike an actor's two-priority mailbox, a lite task has no
// addressable inbox: its entire contract with the runtime is "run until
// either you finish on your own or this fires."
type ShutdownReceiver struct {
	ch <-chan struct{}
}

// Done returns the channel that closes when shutdown has been requested.
func (s ShutdownReceiver) Done() <-chan struct{} {
	return s.ch
}

// LiteTask is a non-addressable cooperative worker. It is supervised like
// an actor (its completion produces a ChildDone to its parent) but has no
// mailbox of its own.
type LiteTask interface {
	Run(ctx context.Context, shutdown ShutdownReceiver) error
}

// taskSupervisorLink mirrors supervisorLink for the lite-task path.
type taskSupervisorLink struct {
	controller Controller
	notifyDone func(taskID Id)
}

// TaskHandle is returned from spawning a lite task. It exposes the
// shutdown trigger and a way to wait for the task's goroutine to exit.
type TaskHandle struct {
	id           Id
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	doneCh       chan struct{}
}

// Id returns the task's identifier.
func (h *TaskHandle) Id() Id {
	return h.id
}

// Shutdown requests the task stop. Idempotent.
func (h *TaskHandle) Shutdown() {
	h.shutdownOnce.Do(func() {
		close(h.shutdownCh)
	})
}

// Join blocks until the task's Run has returned.
func (h *TaskHandle) Join(ctx context.Context) error {
	select {
	case <-h.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// spawnTask launches a lite task's goroutine and wires its completion to
// an optional supervisor using the same ChildDone/Done[C] protocol actors
// use.
func spawnTask(task LiteTask, sup *taskSupervisorLink) *TaskHandle {
	handle := &TaskHandle{
		id:         newId(task),
		shutdownCh: make(chan struct{}),
		doneCh:     make(chan struct{}),
	}

	var doneNotifier *LifecycleNotifier
	if sup != nil {
		doneNotifier = newLifecycleNotifier(func() error {
			if !sup.controller.SignalChildDone(handle.id) {
				return ErrSupervisorGone
			}
			sup.notifyDone(handle.id)
			return nil
		})
	}

	go func() {
		bgCtx := context.Background()
		if err := task.Run(bgCtx, ShutdownReceiver{ch: handle.shutdownCh}); err != nil {
			log.WarnS(bgCtx, "lite task exited with error",
				"task_id", handle.id, "err", err)
		}

		if doneNotifier != nil {
			if err := doneNotifier.Notify(); err != nil {
				log.WarnS(bgCtx, "could not report completion to supervisor, task exiting anyway",
					"task_id", handle.id, "err", err)
			}
		}

		close(handle.doneCh)
	}()

	return handle
}

// SpawnTask launches a lite task with no supervisor.
func SpawnTask(task LiteTask) *TaskHandle {
	return spawnTask(task, nil)
}

// Tick is the action HeartBeat delivers on every interval.
type Tick struct {
	BaseAction
}

// HeartBeat is the canonical lite task: it delivers a Tick to a recipient
// at a fixed cadence until shut down.
type HeartBeat struct {
	interval  time.Duration
	recipient ActionRecipient[Tick]
}

// NewHeartBeat creates a HeartBeat that ticks recipient every interval.
func NewHeartBeat(interval time.Duration, recipient ActionRecipient[Tick]) *HeartBeat {
	return &HeartBeat{interval: interval, recipient: recipient}
}

// Run implements LiteTask.
func (h *HeartBeat) Run(ctx context.Context, shutdown ShutdownReceiver) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.recipient.Act(ctx, Tick{}); err != nil {
				log.DebugS(ctx, "heartbeat tick delivery failed", "err", err)
			}

		case <-shutdown.Done():
			return nil

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
