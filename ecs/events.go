package ecs

// EventKind names a world event.
type EventKind string

const (
	// EventDestroyed: a destructible was broken by a punch.
	EventDestroyed EventKind = "destroyed"
	// EventRespawned: a destructible slot recreated its object.
	EventRespawned EventKind = "respawned"
	// EventLanded: the player touched ground after being airborne.
	EventLanded EventKind = "landed"
	// EventReloaded: the player prefab was reloaded from disk.
	EventReloaded EventKind = "reloaded"
)

// Event is a world event. Entity is the entity the event is about.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue cleared at the end of each frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Events returns the queued events without consuming them, so several systems
// can observe the same frame.
func (q *EventQueue) Events() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
