package loop

// EventKind classifies input events.
type EventKind int

const (
	EventNone    EventKind = iota
	EventClose             // Window/session close request
	EventKeyDown           // A key was pressed
)

// String returns a human-readable name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventClose:
		return "Close"
	case EventKeyDown:
		return "KeyDown"
	default:
		return "Unknown"
	}
}

// Event is one discrete input event.
type Event struct {
	Kind EventKind
	Key  string // Key name for EventKeyDown, e.g. " " or "up"
}

// Close returns a close-request event.
func Close() Event {
	return Event{Kind: EventClose}
}

// KeyDown returns a key-press event.
func KeyDown(key string) Event {
	return Event{Kind: EventKeyDown, Key: key}
}

// InputSource is polled once per tick. Poll must not block.
type InputSource interface {
	Poll() []Event
}

// EventQueue is a FIFO InputSource fed by the platform layer.
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Poll drains and returns all pending events.
func (q *EventQueue) Poll() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
