package component

import "github.com/milk9111/traverse/player"

// InputQueue buffers input events for an entity until the input system
// hands them to its controller.
type InputQueue struct {
	Events []player.InputEvent
}

func (q *InputQueue) Push(evt ...player.InputEvent) {
	q.Events = append(q.Events, evt...)
}

// Drain returns the queued events and empties the queue.
func (q *InputQueue) Drain() []player.InputEvent {
	out := q.Events
	q.Events = nil
	return out
}

var InputQueueComponent = NewComponent[InputQueue]()
