package actor

// Context is handed to every handler invocation. It exposes the actor's
// own address, its terminator, and the two spawn helpers that register a
// freshly created child against this actor as supervisor.
type Context[A any] struct {
	self       *Address[A]
	terminator *Terminator
}

// Self returns the address of the actor this context belongs to.
func (c *Context[A]) Self() *Address[A] {
	return c.self
}

// Terminator returns the actor's termination state machine.
func (c *Context[A]) Terminator() *Terminator {
	return c.terminator
}

// BindActor spawns a child actor of type C, supervised by the actor that
// owns ctx: when the child's runtime loop exits, the parent's Terminator
// is notified (clearing the quiescence dependency) and a Done[C] action is
// delivered into the parent's own mailbox for optional handling.
func BindActor[A any, C any](ctx *Context[A], childActor C, behaviors *Behaviors[C]) *Address[C] {
	parent := ctx.self

	link := &supervisorLink{
		controller: parent.ctrl,
		notifyDone: func(childID Id) {
			parent.injectHighPriority(Done[C]{Child: childID})
		},
	}

	addr := spawn(behaviors, childActor, link)

	ctx.terminator.addChild(childHandle{
		id:          addr.id,
		requestStop: addr.Interrupt,
	})

	return addr
}

// BindTask spawns a lite task supervised by the actor that owns ctx, using
// the same ChildDone/Done[C] reporting BindActor uses for full actors.
func BindTask[A any](ctx *Context[A], task LiteTask) *TaskHandle {
	parent := ctx.self

	link := &taskSupervisorLink{
		controller: parent.ctrl,
		notifyDone: func(taskID Id) {
			parent.injectHighPriority(Done[LiteTask]{Child: taskID})
		},
	}

	handle := spawnTask(task, link)

	ctx.terminator.addChild(childHandle{
		id:          handle.id,
		requestStop: handle.Shutdown,
	})

	return handle
}
