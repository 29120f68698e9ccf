package component

import "github.com/milk9111/catsland/geom"

// CollisionDataKind tags which field of CollisionData is set.
type CollisionDataKind uint8

const (
	CollisionDataRay CollisionDataKind = iota + 1
	CollisionDataSweep
)

// CollisionData holds either a ray hit or a sweep hit.
type CollisionData struct {
	Kind  CollisionDataKind
	Ray   geom.RayIntersection
	Sweep geom.Sweep
}

func RayHit(hit geom.RayIntersection) CollisionData {
	return CollisionData{Kind: CollisionDataRay, Ray: hit}
}

func SweepHit(hit geom.Sweep) CollisionData {
	return CollisionData{Kind: CollisionDataSweep, Sweep: hit}
}

// CollisionEvent records one contact against Entity, seen from the buffer
// owner. Collider is the owner's collider entity that produced the contact.
type CollisionEvent struct {
	Entity   uint64
	Collider uint64
	Type     CollisionType
	Data     CollisionData
}

// CollisionEvents is a per-entity buffer refilled every tick.
type CollisionEvents struct {
	Buffer []CollisionEvent
}

var CollisionEventsComponent = NewComponent[CollisionEvents]()

// Clear empties the buffer and keeps its capacity.
func (c *CollisionEvents) Clear() {
	if c == nil {
		return
	}
	clear(c.Buffer)
	c.Buffer = c.Buffer[:0]
}

func (c *CollisionEvents) Push(evt CollisionEvent) {
	if c == nil {
		return
	}
	c.Buffer = append(c.Buffer, evt)
}

// Drain returns a copy of the buffered events and clears the buffer.
func (c *CollisionEvents) Drain() []CollisionEvent {
	if c == nil || len(c.Buffer) == 0 {
		return nil
	}
	out := append([]CollisionEvent(nil), c.Buffer...)
	c.Clear()
	return out
}

func (c *CollisionEvents) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Buffer)
}

// Rays returns buffered ray hits in insertion order.
func (c *CollisionEvents) Rays() []CollisionEvent {
	return c.filter(CollisionDataRay)
}

// Sweeps returns buffered sweep hits in insertion order.
func (c *CollisionEvents) Sweeps() []CollisionEvent {
	return c.filter(CollisionDataSweep)
}

func (c *CollisionEvents) filter(kind CollisionDataKind) []CollisionEvent {
	if c == nil {
		return nil
	}
	var out []CollisionEvent
	for _, evt := range c.Buffer {
		if evt.Data.Kind == kind {
			out = append(out, evt)
		}
	}
	return out
}
