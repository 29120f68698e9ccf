package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
)

// NewGround spawns a static box centered at pos.
func NewGround(w *ecs.World, pos, size cp.Vector) (ecs.Entity, error) {
	e, err := newStatic(w, pos, size, component.CollisionTypeGround)
	if err != nil {
		return 0, fmt.Errorf("ground: %w", err)
	}
	if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		DestroyWithColliders(w, e)
		return 0, fmt.Errorf("ground: %w", err)
	}
	return e, nil
}

// NewGoal spawns a collectible centered at pos.
func NewGoal(w *ecs.World, pos, size cp.Vector) (ecs.Entity, error) {
	e, err := newStatic(w, pos, size, component.CollisionTypeGoal)
	if err != nil {
		return 0, fmt.Errorf("goal: %w", err)
	}
	if err := ecs.Add(w, e, component.GoalTagComponent.Kind(), &component.GoalTag{}); err != nil {
		DestroyWithColliders(w, e)
		return 0, fmt.Errorf("goal: %w", err)
	}
	return e, nil
}

func newStatic(w *ecs.World, pos, size cp.Vector, kind component.CollisionType) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.CollisionTypeComponent.Kind(), &kind); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if _, err := AttachBox(w, e, cp.Vector{}, geom.NewBox(size.X, size.Y)); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
