package system

import (
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
	"github.com/milk9111/catsland/prefabs"
	"go.uber.org/zap"
)

// PlayerControllerSystem turns Input into jumps, gravity strength and
// walking along the axis perpendicular to gravity.
type PlayerControllerSystem struct {
	settings *prefabs.PhysicsSettings
	logger   *zap.Logger
}

func NewPlayerControllerSystem(settings *prefabs.PhysicsSettings, logger *zap.Logger) *PlayerControllerSystem {
	if settings == nil {
		defaults := prefabs.DefaultPhysicsSettings()
		settings = &defaults
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayerControllerSystem{settings: settings, logger: logger}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.JumpStateComponent.Kind(),
		component.GravityDirectionComponent.Kind(),
		func(e ecs.Entity, input *component.Input, vel *component.Velocity, jump *component.JumpState, dir *component.GravityDirection) {
			p.control(w, e, input, vel, jump, dir)
		})
}

func (p *PlayerControllerSystem) control(w *ecs.World, e ecs.Entity, input *component.Input, vel *component.Velocity, jump *component.JumpState, dir *component.GravityDirection) {
	down := dir.Dir.Vector()
	if input.JumpPressed && jump.OnGround {
		vel.Value = vel.Value.Sub(down.Mult(p.settings.InitialJumpSpeed))
		jump.OnGround = false
		jump.TurnedThisJump = false
		w.Events().Push(ecs.Event{Type: ecs.EventJumped, Entity: e})
		p.logger.Debug("jump", zap.Stringer("entity", e), zap.Stringer("gravity", dir.Dir))
	}

	if g, ok := ecs.Get(w, e, component.GravityComponent.Kind()); ok {
		if input.Jump {
			g.Value = p.settings.GravityPressed
		} else {
			g.Value = p.settings.GravityUnpressed
		}
	}

	// keep the fall, replace the walk
	forward := dir.Dir.Forward().Vector()
	fall := geom.MulAxes(vel.Value, geom.Abs(down))
	if along := forward.Dot(input.Move()); along != 0 {
		vel.Value = fall.Add(forward.Mult(along).Normalize().Mult(p.settings.HorizontalSpeed))
	} else {
		vel.Value = fall
	}
}
