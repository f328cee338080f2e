package ecs

// EventKind identifies gameplay events published during a tick.
type EventKind string

const (
	EventHazardHit     EventKind = "hazard_hit"
	EventPickupTaken   EventKind = "pickup_taken"
	EventHazardExpired EventKind = "hazard_expired"
	EventRoundOver     EventKind = "round_over"
)

// Event is a gameplay event payload. Entity is the entity the event is
// about; it may already be destroyed by the time the event is drained.
type Event struct {
	Kind   EventKind
	Entity Entity
	X      float64
	Y      float64
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
