package system

import (
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/prefabs"
	"go.uber.org/zap"
)

// NewPipeline registers every gameplay system in tick order. Systems share
// settings, so updating *settings in place takes effect on the next tick.
func NewPipeline(settings *prefabs.PhysicsSettings, logger *zap.Logger) *ecs.Scheduler {
	s := ecs.NewScheduler()
	s.Add(ecs.PhaseInput, NewPlayerControllerSystem(settings, logger))
	s.Add(ecs.PhaseSimulate, NewPhysicsSystem(settings))
	s.Add(ecs.PhaseCollisionClear, NewCollisionClearSystem())
	s.Add(ecs.PhaseCollisionProduce, NewCollisionSystem(logger))
	s.Add(ecs.PhaseCollisionConsume, NewGroundSystem(settings, logger))
	s.Add(ecs.PhaseCollisionConsume, NewGoalSystem(logger))
	s.Add(ecs.PhaseIntegrate, NewMovementSystem())
	s.Add(ecs.PhaseLate, NewBoundsSystem(logger))
	return s
}
