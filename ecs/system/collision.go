package system

import (
	"fmt"

	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
	"go.uber.org/zap"
)

// CollisionClearSystem empties every collision buffer before detection.
type CollisionClearSystem struct{}

func NewCollisionClearSystem() *CollisionClearSystem {
	return &CollisionClearSystem{}
}

func (s *CollisionClearSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CollisionEventsComponent.Kind(), func(_ ecs.Entity, events *component.CollisionEvents) {
		events.Clear()
	})
}

// CollisionSystem runs every ray against every box and every box pair both
// ways, filling the receivers' buffers. There is no broad phase.
type CollisionSystem struct {
	logger *zap.Logger
}

func NewCollisionSystem(logger *zap.Logger) *CollisionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollisionSystem{logger: logger}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	boxes := collectBoxes(w)
	s.rays(w, collectRays(w), boxes)
	s.boxes(w, boxes)
}

func (s *CollisionSystem) rays(w *ecs.World, rays []rayRef, boxes []boxRef) {
	for _, r := range rays {
		events, ok := ecs.Get(w, r.owner, component.CollisionEventsComponent.Kind())
		if !ok {
			continue
		}
		for _, b := range boxes {
			if b.owner == r.owner {
				continue
			}
			hit, ok := geom.Raycast(r.origin, r.col.Ray, b.center, b.col.Box)
			if !ok {
				continue
			}
			events.Push(component.CollisionEvent{
				Entity:   uint64(b.owner),
				Collider: uint64(r.entity),
				Type:     s.collisionType(w, b.owner),
				Data:     component.RayHit(hit),
			})
		}
	}
}

func (s *CollisionSystem) boxes(w *ecs.World, boxes []boxRef) {
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			if a.owner == b.owner {
				continue
			}
			s.sweep(w, a, b)
			s.sweep(w, b, a)
		}
	}
}

// sweep moves recv by its owner's planned displacement against other.
func (s *CollisionSystem) sweep(w *ecs.World, recv, other boxRef) {
	events, ok := ecs.Get(w, recv.owner, component.CollisionEventsComponent.Kind())
	if !ok {
		return
	}
	hit, ok := geom.SweepBox(recv.center, recv.col.Box.Size, other.center, other.col.Box.Size, movementOf(w, recv.owner))
	if !ok {
		return
	}
	events.Push(component.CollisionEvent{
		Entity:   uint64(other.owner),
		Collider: uint64(recv.entity),
		Type:     s.collisionType(w, other.owner),
		Data:     component.SweepHit(hit),
	})
}

// collisionType panics when e has no CollisionType. An untagged participant
// is a wiring bug and must not produce mislabelled events.
func (s *CollisionSystem) collisionType(w *ecs.World, e ecs.Entity) component.CollisionType {
	t, ok := ecs.Get(w, e, component.CollisionTypeComponent.Kind())
	if !ok {
		err := fmt.Errorf("collision: entity %v: %w", e, component.ErrMissingCollisionType)
		s.logger.Error("collider owner is not tagged", zap.Stringer("entity", e), zap.Error(err))
		panic(err)
	}
	return *t
}
