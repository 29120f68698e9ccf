package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
	"github.com/milk9111/catsland/prefabs"
)

// NewPlayerAt spawns the player at pos falling towards gravity. Player
// colliders are authored for downward gravity and turned to match.
func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, settings prefabs.PhysicsSettings, pos cp.Vector, gravity common.Direction) (ecs.Entity, error) {
	if spec.Box.Width <= 0 || spec.Box.Height <= 0 {
		return 0, fmt.Errorf("player: box must have area, got %vx%v", spec.Box.Width, spec.Box.Height)
	}

	e := ecs.CreateEntity(w)
	turns := quarterTurns(gravity)
	err := addAll(
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
		},
		func() error { return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}) },
		func() error { return ecs.Add(w, e, component.AccelerationComponent.Kind(), &component.Acceleration{}) },
		func() error { return ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{}) },
		func() error {
			return ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{Value: settings.GravityUnpressed})
		},
		func() error {
			return ecs.Add(w, e, component.GravityDirectionComponent.Kind(), &component.GravityDirection{Dir: gravity})
		},
		func() error {
			return ecs.Add(w, e, component.JumpStateComponent.Kind(), &component.JumpState{
				LastVertical:   gravity,
				LastHorizontal: gravity.Forward(),
			})
		},
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			ct := component.CollisionTypePlayer
			return ecs.Add(w, e, component.CollisionTypeComponent.Kind(), &ct)
		},
		func() error {
			return ecs.Add(w, e, component.CollisionEventsComponent.Kind(), &component.CollisionEvents{})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: %w", err)
	}

	box := geom.NewBox(spec.Box.Width, spec.Box.Height)
	if turns%2 == 1 {
		box = box.Rotated()
	}
	if _, err := AttachBox(w, e, cp.Vector{}, box); err != nil {
		DestroyWithColliders(w, e)
		return 0, fmt.Errorf("player: box: %w", err)
	}
	for i, r := range spec.Rays {
		offset := turnCCW(cp.Vector{X: r.Offset.X, Y: r.Offset.Y}, turns)
		dir := turnCCW(cp.Vector{X: r.Direction.X, Y: r.Direction.Y}, turns)
		if geom.IsZero(dir) {
			DestroyWithColliders(w, e)
			return 0, fmt.Errorf("player: ray %d has no length", i)
		}
		if _, err := AttachRay(w, e, offset, geom.Ray{Direction: dir}); err != nil {
			DestroyWithColliders(w, e)
			return 0, fmt.Errorf("player: ray %d: %w", i, err)
		}
	}
	return e, nil
}

// quarterTurns counts counterclockwise quarter turns from Down to d.
func quarterTurns(d common.Direction) int {
	n := 0
	for cur := common.Down; cur != d && n < 4; cur = cur.Counterclockwise() {
		n++
	}
	return n
}

func turnCCW(v cp.Vector, turns int) cp.Vector {
	for range turns {
		v = v.Perp()
	}
	return v
}

func addAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
