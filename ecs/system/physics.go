package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
	"github.com/milk9111/catsland/prefabs"
)

// PhysicsSystem applies acceleration and gravity to velocity and plans the
// displacement for this tick. Nothing moves until MovementSystem runs.
type PhysicsSystem struct {
	settings *prefabs.PhysicsSettings
}

func NewPhysicsSystem(settings *prefabs.PhysicsSettings) *PhysicsSystem {
	if settings == nil {
		defaults := prefabs.DefaultPhysicsSettings()
		settings = &defaults
	}
	return &PhysicsSystem{settings: settings}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	maxSpeed := s.settings.MaxSpeed
	limit := cp.Vector{X: maxSpeed, Y: maxSpeed}

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, move *component.Movement) {
		var accel cp.Vector
		if a, ok := ecs.Get(w, e, component.AccelerationComponent.Kind()); ok {
			accel = a.Value
		}
		g, hasG := ecs.Get(w, e, component.GravityComponent.Kind())
		dir, hasDir := ecs.Get(w, e, component.GravityDirectionComponent.Kind())
		if hasG && hasDir {
			accel = accel.Add(dir.Dir.Vector().Mult(g.Value))
		}

		vel.Value = vel.Value.Add(accel.Mult(dt))
		if maxSpeed > 0 {
			vel.Value = geom.ClampAxes(vel.Value, limit.Neg(), limit)
		}
		move.Delta = vel.Value.Mult(dt)
	})
}

// MovementSystem applies the planned displacement left after collision
// resolution.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.MovementComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, move *component.Movement) {
		tr.Position = tr.Position.Add(move.Delta)
		move.Delta = cp.Vector{}
	})
}
