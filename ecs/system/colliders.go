package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
)

// dt is the fixed tick length in seconds.
const dt = 1.0 / common.TickRate

type boxRef struct {
	entity ecs.Entity
	owner  ecs.Entity
	col    *component.BoxCollider
	center cp.Vector
}

type rayRef struct {
	entity ecs.Entity
	owner  ecs.Entity
	col    *component.RayCollider
	origin cp.Vector
}

// collectBoxes resolves every box collider to world space. Colliders whose
// owner has no transform are skipped.
func collectBoxes(w *ecs.World) []boxRef {
	var out []boxRef
	ecs.ForEach(w, component.BoxColliderComponent.Kind(), func(e ecs.Entity, c *component.BoxCollider) {
		owner := ecs.Entity(c.Owner)
		t, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
		if !ok {
			return
		}
		out = append(out, boxRef{entity: e, owner: owner, col: c, center: t.Position.Add(c.Offset)})
	})
	return out
}

func collectRays(w *ecs.World) []rayRef {
	var out []rayRef
	ecs.ForEach(w, component.RayColliderComponent.Kind(), func(e ecs.Entity, c *component.RayCollider) {
		owner := ecs.Entity(c.Owner)
		t, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
		if !ok {
			return
		}
		out = append(out, rayRef{entity: e, owner: owner, col: c, origin: t.Position.Add(c.Offset)})
	})
	return out
}

func movementOf(w *ecs.World, e ecs.Entity) cp.Vector {
	if m, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		return m.Delta
	}
	return cp.Vector{}
}
