package ecs

import "github.com/milk9111/catsland/common"

// EventType identifies gameplay events raised during a tick.
type EventType uint8

const (
	EventLanded EventType = iota + 1
	EventJumped
	EventGravityRotated
	EventGoalCollected
	EventLevelComplete
	EventPlayerDied
)

func (t EventType) String() string {
	switch t {
	case EventLanded:
		return "landed"
	case EventJumped:
		return "jumped"
	case EventGravityRotated:
		return "gravity-rotated"
	case EventGoalCollected:
		return "goal-collected"
	case EventLevelComplete:
		return "level-complete"
	case EventPlayerDied:
		return "player-died"
	default:
		return "unknown"
	}
}

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// GravityRotation is the payload of EventGravityRotated.
type GravityRotation struct {
	From common.Direction
	To   common.Direction
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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// FirstOf returns the earliest event whose type is one of types.
func FirstOf(events []Event, types ...EventType) (Event, bool) {
	for _, evt := range events {
		for _, t := range types {
			if evt.Type == t {
				return evt, true
			}
		}
	}
	return Event{}, false
}
