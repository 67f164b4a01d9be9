package actor

// BaseMessage is embedded by concrete message types to satisfy the
// unexported messageMarker method of Message, sealing the interface to
// types that opt in deliberately.
type BaseMessage struct{}

func (BaseMessage) messageMarker() {}

// Message is the sealed interface every actor message must satisfy.
// Embedding BaseMessage is the supported way to implement it.
type Message interface {
	messageMarker()
}

// HighPriority is implemented by a message that wants to bypass the
// bounded normal mailbox and travel over the unbounded high-priority path.
// Messages that don't implement it are treated as normal priority.
type HighPriority interface {
	HighPriority() bool
}

// Action is a one-way message: its handler's error, if any, is logged and
// discarded rather than surfaced to the sender.
type Action interface {
	Message
	actionMarker()
}

// BaseAction is embedded by concrete action message types.
type BaseAction struct {
	BaseMessage
}

func (BaseAction) actionMarker() {}

// Interaction is a request/response message: its handler's result is
// delivered to the caller's Future.
type Interaction[R any] interface {
	Message
	interactionMarker()
}

// BaseInteraction is embedded by concrete interaction message types. R is
// the type of the response the handler will produce.
type BaseInteraction[R any] struct {
	BaseMessage
}

func (BaseInteraction[R]) interactionMarker() {}

// isHighPriority reports whether msg should travel over the unbounded
// high-priority mailbox.
func isHighPriority(msg Message) bool {
	hp, ok := msg.(HighPriority)
	return ok && hp.HighPriority()
}
