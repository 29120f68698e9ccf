package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
)

// AttachBox creates a box collider entity owned by owner.
func AttachBox(w *ecs.World, owner ecs.Entity, offset cp.Vector, box geom.Box) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.BoxColliderComponent.Kind(), &component.BoxCollider{
		Owner:  uint64(owner),
		Offset: offset,
		Box:    box,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

// AttachRay creates a ray collider entity owned by owner.
func AttachRay(w *ecs.World, owner ecs.Entity, offset cp.Vector, ray geom.Ray) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.RayColliderComponent.Kind(), &component.RayCollider{
		Owner:  uint64(owner),
		Offset: offset,
		Ray:    ray,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

// Colliders returns the collider entities owned by owner.
func Colliders(w *ecs.World, owner ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.BoxColliderComponent.Kind(), func(e ecs.Entity, c *component.BoxCollider) {
		if c.Owner == uint64(owner) {
			out = append(out, e)
		}
	})
	ecs.ForEach(w, component.RayColliderComponent.Kind(), func(e ecs.Entity, c *component.RayCollider) {
		if c.Owner == uint64(owner) {
			out = append(out, e)
		}
	})
	return out
}

// DestroyWithColliders removes owner and every collider it owns.
func DestroyWithColliders(w *ecs.World, owner ecs.Entity) bool {
	if !ecs.IsAlive(w, owner) {
		return false
	}
	for _, c := range Colliders(w, owner) {
		ecs.DestroyEntity(w, c)
	}
	return ecs.DestroyEntity(w, owner)
}
